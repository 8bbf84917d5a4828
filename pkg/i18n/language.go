package i18n

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrymomot/esprit/pkg/cache"
)

// Language is a stored language. ParentID is nil for a root language; a
// child language inherits every translation it does not override.
type Language struct {
	ParentID   *int64 `json:"parent_id,omitempty" yaml:"parent,omitempty"`
	Identifier string `json:"identifier" yaml:"identifier"`
	ID         int64  `json:"id" yaml:"id"`
}

// IsRoot reports whether l has no parent.
func (l *Language) IsRoot() bool { return l.ParentID == nil }

func (l *Language) String() string { return l.Identifier }

// Store is where languages and translations live.
type Store interface {
	LanguageByID(ctx context.Context, id int64) (*Language, error)
	LanguageByIdentifier(ctx context.Context, identifier string) (*Language, error)
	Languages(ctx context.Context) ([]*Language, error)

	// Translation returns the text stored for exactly this language. A
	// missing row is ("", false, nil).
	Translation(ctx context.Context, languageID int64, identifier string) (string, bool, error)
}

// LanguageSource loads languages through a cache and keeps a single
// *Language per id for its lifetime.
type LanguageSource struct {
	store   Store
	cache   cache.Cache
	byID    map[int64]*Language
	byIdent map[string]*Language
	mu      sync.RWMutex
}

// NewLanguageSource creates a LanguageSource. A nil cache skips caching.
func NewLanguageSource(store Store, c cache.Cache) *LanguageSource {
	if c == nil {
		c = cache.NewBlackhole()
	}
	return &LanguageSource{
		store:   store,
		cache:   c,
		byID:    make(map[int64]*Language),
		byIdent: make(map[string]*Language),
	}
}

func languageIDKey(id int64) string {
	return "lang_" + strconv.FormatInt(id, 10)
}

func languageIdentKey(identifier string) string {
	return "lang_ident_" + identifier
}

// ByID returns the language with id.
func (s *LanguageSource) ByID(ctx context.Context, id int64) (*Language, error) {
	s.mu.RLock()
	l, ok := s.byID[id]
	s.mu.RUnlock()
	if ok {
		return l, nil
	}

	var cached Language
	if found, _ := s.cache.Get(ctx, languageIDKey(id), &cached); found {
		return s.remember(&cached), nil
	}

	l, err := s.store.LanguageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, l), nil
}

// ByIdentifier returns the language with identifier, e.g. "en" or "en-GB".
func (s *LanguageSource) ByIdentifier(ctx context.Context, identifier string) (*Language, error) {
	if identifier == "" {
		return nil, ErrEmptyLanguage
	}
	s.mu.RLock()
	l, ok := s.byIdent[identifier]
	s.mu.RUnlock()
	if ok {
		return l, nil
	}

	var cached Language
	if found, _ := s.cache.Get(ctx, languageIdentKey(identifier), &cached); found {
		return s.remember(&cached), nil
	}

	l, err := s.store.LanguageByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, l), nil
}

// All returns every stored language, bypassing the cache for the listing.
func (s *LanguageSource) All(ctx context.Context) ([]*Language, error) {
	langs, err := s.store.Languages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Language, 0, len(langs))
	for _, l := range langs {
		out = append(out, s.save(ctx, l))
	}
	return out, nil
}

// Ancestry returns l followed by its parent, grandparent and so on up to the
// root.
func (s *LanguageSource) Ancestry(ctx context.Context, l *Language) ([]*Language, error) {
	chain := []*Language{l}
	seen := map[int64]bool{l.ID: true}
	for cur := l; cur.ParentID != nil; {
		parent, err := s.ByID(ctx, *cur.ParentID)
		if err != nil {
			return nil, err
		}
		if seen[parent.ID] {
			return nil, fmt.Errorf("%w: %s", ErrLanguageCycle, l.Identifier)
		}
		seen[parent.ID] = true
		chain = append(chain, parent)
		cur = parent
	}
	return chain, nil
}

func (s *LanguageSource) save(ctx context.Context, l *Language) *Language {
	l = s.remember(l)
	_ = s.cache.Set(ctx, languageIDKey(l.ID), l, 0)
	_ = s.cache.Set(ctx, languageIdentKey(l.Identifier), l, 0)
	return l
}

// remember returns the canonical instance for l's id, registering l when it
// is the first one seen.
func (s *LanguageSource) remember(l *Language) *Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byID[l.ID]; ok {
		return existing
	}
	s.byID[l.ID] = l
	s.byIdent[l.Identifier] = l
	return l
}
