package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrFeedUnavailable = errors.New("catalog feed unavailable")

// Feed column headers as exported from the inventory spreadsheet.
const (
	feedFieldID          = "Código de barras"
	feedFieldName        = "Nombre"
	feedFieldDescription = "Descripción"
	feedFieldPrice       = "Precio"
	feedFieldStock       = "Stock"
	feedFieldCategory    = "Categoría"
	feedFieldImage       = "Imagen"
)

// Loader fetches the product feed and normalizes it into Products.
type Loader struct {
	feedURL string
	client  *http.Client
}

func NewLoader(feedURL string) *Loader {
	return &Loader{
		feedURL: feedURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Load fetches and normalizes the feed. A cancelled context aborts the fetch
// without returning partial results; retry is the caller's decision.
func (l *Loader) Load(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to build feed request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode feed: %w", err)
	}

	products := make([]Product, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	discarded := 0

	for _, row := range rows {
		id := strings.TrimSpace(textField(row, feedFieldID))
		if id == "" {
			discarded++
			continue
		}
		// Duplicate identifiers collapse to the first occurrence.
		if seen[id] {
			discarded++
			continue
		}
		seen[id] = true

		products = append(products, Product{
			ID:          id,
			Name:        textField(row, feedFieldName),
			Description: textField(row, feedFieldDescription),
			Category:    textField(row, feedFieldCategory),
			Price:       priceField(row, feedFieldPrice),
			Stock:       intField(row, feedFieldStock),
			Image:       textField(row, feedFieldImage),
		})
	}

	if discarded > 0 {
		log.Warn().Int("discarded", discarded).Int("loaded", len(products)).Msg("catalog: discarded unusable feed rows")
	}

	return products, nil
}

func textField(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// priceField tolerates both numeric and string cells; anything unparsable
// defaults to zero.
func priceField(row map[string]any, key string) decimal.Decimal {
	switch v := row[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil || d.IsNegative() {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func intField(row map[string]any, key string) int {
	switch v := row[key].(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}
