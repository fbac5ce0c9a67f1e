// Package session keeps the in-memory shopper sessions. Nothing here survives
// a process restart.
package session

import (
	"fmt"
	"sync"

	"github.com/gofrs/uuid"

	"github.com/jrmolina/tienda-whatsapp/internal/checkout"
)

// Registry maps session ids to live checkout sessions. Unknown or absent ids
// lazily create a fresh session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*checkout.Session
	cfg      checkout.Config
}

func NewRegistry(cfg checkout.Config) *Registry {
	return &Registry{
		sessions: make(map[string]*checkout.Session),
		cfg:      cfg,
	}
}

// Get returns the session for id, creating one under a fresh id when the id is
// empty or unknown. The returned id is the canonical one for the session.
func (r *Registry) Get(id string) (*checkout.Session, string, error) {
	if id != "" {
		r.mu.RLock()
		sess, ok := r.sessions[id]
		r.mu.RUnlock()
		if ok {
			return sess, id, nil
		}
	}

	newID, err := uuid.NewV4()
	if err != nil {
		return nil, "", fmt.Errorf("session: failed to generate id: %w", err)
	}

	sess := checkout.NewSession(r.cfg)
	r.mu.Lock()
	r.sessions[newID.String()] = sess
	r.mu.Unlock()

	return sess, newID.String(), nil
}
