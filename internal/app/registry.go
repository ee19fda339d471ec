package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mentorlink/webicast/internal/core"
)

// Registry tracks every live connection by an opaque id. It has no business
// semantics; room-affecting cleanup on disconnect belongs to the orchestrator.
type Registry struct {
	mu    sync.RWMutex
	conns map[core.ConnID]core.SignalConnection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[core.ConnID]core.SignalConnection)}
}

// Register stores the connection and returns its new id.
func (r *Registry) Register(conn core.SignalConnection) core.ConnID {
	id := core.ConnID(uuid.NewString())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = conn
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection registered")
	return id
}

// Unregister is idempotent; a repeated call for an absent id is a no-op.
func (r *Registry) Unregister(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection unregistered")
}

func (r *Registry) Get(id core.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[id]
	return conn, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
