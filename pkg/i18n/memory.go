package i18n

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// MemoryStore keeps languages and translations in process. It can be
// seeded from a YAML document:
//
//	languages:
//	  - {id: 1, identifier: en}
//	  - {id: 2, identifier: en-GB, parent: 1}
//	translations:
//	  en:
//	    greeting: Hello
//	  en-GB:
//	    color: Colour
type MemoryStore struct {
	languages    map[int64]*Language
	translations map[int64]map[string]string
	mu           sync.RWMutex
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		languages:    make(map[int64]*Language),
		translations: make(map[int64]map[string]string),
	}
}

type memoryDocument struct {
	Translations map[string]map[string]string `yaml:"translations"`
	Languages    []Language                   `yaml:"languages"`
}

// LoadMemoryStore reads a YAML document from fsys.
func LoadMemoryStore(fsys fs.FS, name string) (*MemoryStore, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
	}
	s := NewMemoryStore()
	if err := s.LoadYAML(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
	}
	return s, nil
}

// LoadYAML merges a YAML document into the store.
func (s *MemoryStore) LoadYAML(data []byte) error {
	var doc memoryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, l := range doc.Languages {
		if l.Identifier == "" {
			return ErrEmptyLanguage
		}
		s.AddLanguage(l)
	}
	for ident, texts := range doc.Translations {
		lang, err := s.LanguageByIdentifier(context.Background(), ident)
		if err != nil {
			return err
		}
		for id, text := range texts {
			_ = s.SetTranslation(context.Background(), lang.ID, id, text)
		}
	}
	return nil
}

// AddLanguage stores l, replacing any language with the same id.
func (s *MemoryStore) AddLanguage(l Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languages[l.ID] = &l
}

func (s *MemoryStore) LanguageByID(_ context.Context, id int64) (*Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.languages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNonexistentLanguage, strconv.FormatInt(id, 10))
	}
	cp := *l
	return &cp, nil
}

func (s *MemoryStore) LanguageByIdentifier(_ context.Context, identifier string) (*Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.languages {
		if l.Identifier == identifier {
			cp := *l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNonexistentLanguage, identifier)
}

func (s *MemoryStore) Languages(context.Context) ([]*Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Language, 0, len(s.languages))
	for _, l := range s.languages {
		cp := *l
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *Language) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemoryStore) Translation(_ context.Context, languageID int64, identifier string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.translations[languageID][identifier]
	return text, ok, nil
}

func (s *MemoryStore) IdentifierExists(_ context.Context, identifier string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, texts := range s.translations {
		if _, ok := texts[identifier]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) SetTranslation(_ context.Context, languageID int64, identifier, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.languages[languageID]; !ok {
		return fmt.Errorf("%w: %s", ErrNonexistentLanguage, strconv.FormatInt(languageID, 10))
	}
	texts, ok := s.translations[languageID]
	if !ok {
		texts = make(map[string]string)
		s.translations[languageID] = texts
	}
	texts[identifier] = text
	return nil
}

var _ WritableStore = (*MemoryStore)(nil)
