package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"sqlintent/models"
)

// Store keeps the last successful resolution per session id. Writes are
// last-writer-wins; the underlying cache serializes concurrent access to
// the same key, so readers never observe a torn context.
type Store struct {
	cache *gocache.Cache
}

// New creates a session context store. A ttl of zero keeps contexts for the
// lifetime of the process; a positive ttl bounds memory on long-running
// deployments that never reuse session ids.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		return &Store{cache: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Store{cache: gocache.New(ttl, 2*ttl)}
}

// Record overwrites the session's context unconditionally. It must only be
// called after a fully successful pipeline run. The params map is copied so
// later caller mutations cannot reach the stored context.
func (s *Store) Record(sessionID, templateName string, params models.Params) {
	s.cache.SetDefault(sessionID, models.SessionContext{
		SessionID:    sessionID,
		LastTemplate: templateName,
		LastParams:   cloneParams(params),
	})
}

// Get returns the context for a session id, or false if the session has
// never had a successful resolution. The returned context is a copy;
// mutating it does not affect the store.
func (s *Store) Get(sessionID string) (*models.SessionContext, bool) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, false
	}
	ctx := v.(models.SessionContext)
	ctx.LastParams = cloneParams(ctx.LastParams)
	return &ctx, true
}

func cloneParams(params models.Params) models.Params {
	if params == nil {
		return nil
	}
	clone := make(models.Params, len(params))
	for k, v := range params {
		clone[k] = v
	}
	return clone
}

// Len reports the number of tracked sessions.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
