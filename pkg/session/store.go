package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/esprit/pkg/cache"
)

// Store persists sessions by token.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get returns the session for token, ErrNotFound when there is none
	// and ErrExpired when it has expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves changes to an existing session.
	Update(ctx context.Context, s *Session) error

	// Delete removes the session for token.
	Delete(ctx context.Context, token string) error
}

// CacheStore keeps sessions in a cache namespace. Entries expire with the
// session.
type CacheStore struct {
	cache cache.Cache
}

// NewCacheStore stores sessions under the "session" namespace of c.
func NewCacheStore(c cache.Cache) *CacheStore {
	return &CacheStore{cache: c.AccessNamespace("session")}
}

func (s *CacheStore) Create(ctx context.Context, sess *Session) error {
	return s.put(ctx, sess)
}

func (s *CacheStore) Update(ctx context.Context, sess *Session) error {
	return s.put(ctx, sess)
}

func (s *CacheStore) put(ctx context.Context, sess *Session) error {
	if sess.Token == "" {
		return ErrInvalidToken
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	return s.cache.Set(ctx, sess.Token, sess, ttl)
}

func (s *CacheStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var sess Session
	found, err := s.cache.Get(ctx, token, &sess)
	if err != nil {
		return nil, errors.Join(ErrNotFound, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	if sess.IsExpired() {
		_ = s.cache.Delete(ctx, token)
		return nil, ErrExpired
	}
	if sess.Values == nil {
		sess.Values = make(map[string]any)
	}
	return &sess, nil
}

func (s *CacheStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, token)
}

var _ Store = (*CacheStore)(nil)
