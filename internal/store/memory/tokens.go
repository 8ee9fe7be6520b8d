package memory

import (
	"context"
	"sync"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

// RefreshTokenStore keeps hashed refresh tokens in memory.
type RefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]domain.RefreshToken
}

func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{tokens: make(map[string]domain.RefreshToken)}
}

func (s *RefreshTokenStore) Save(_ context.Context, token domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.ID] = token
	return nil
}

func (s *RefreshTokenStore) GetByHash(_ context.Context, hash string) (domain.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tokens {
		if t.TokenHash == hash {
			return t, nil
		}
	}
	return domain.RefreshToken{}, &domain.ErrNotFound{Resource: "refresh_token", ID: "by-hash"}
}

func (s *RefreshTokenStore) Revoke(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[id]
	if !ok {
		return &domain.ErrNotFound{Resource: "refresh_token", ID: id}
	}
	t.Revoked = true
	s.tokens[id] = t
	return nil
}

func (s *RefreshTokenStore) RevokeAllForUser(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tokens {
		if t.UserID == userID {
			t.Revoked = true
			s.tokens[id] = t
		}
	}
	return nil
}
