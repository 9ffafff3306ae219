package memory

import (
	"context"
	"time"
)

type revocationRepository struct {
	s *Store
}

func (r *revocationRepository) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for id, exp := range r.s.revoked {
		if !exp.After(now) {
			delete(r.s.revoked, id)
		}
	}
	if expiresAt.After(now) {
		r.s.revoked[tokenID] = expiresAt
	}
	return nil
}

func (r *revocationRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	exp, ok := r.s.revoked[tokenID]
	return ok && exp.After(r.s.now()), nil
}
