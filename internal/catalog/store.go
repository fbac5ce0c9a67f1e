package catalog

import "strings"

// Store is an immutable in-memory product set built once from the feed.
type Store struct {
	products []Product
	byID     map[string]Product
}

func NewStore(products []Product) *Store {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Store{products: products, byID: byID}
}

// All returns the products in feed order.
func (s *Store) All() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Get(id string) (Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Search filters by case-insensitive substring match over name, category and
// description. An empty query returns everything.
func (s *Store) Search(query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.All()
	}

	var out []Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out
}
