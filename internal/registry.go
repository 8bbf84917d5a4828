package internal

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/esprit/pkg/cache"
	"github.com/dmitrymomot/esprit/pkg/config"
	"github.com/dmitrymomot/esprit/pkg/db"
	"github.com/dmitrymomot/esprit/pkg/i18n"
	"github.com/dmitrymomot/esprit/pkg/logger"
	"github.com/dmitrymomot/esprit/pkg/mailer"
)

// Services are the shared collaborators handed to command and view
// factories. Databases is nil when no database is configured.
type Services struct {
	Config       *config.Config
	Logger       *logger.Logger
	Cache        cache.Cache
	Databases    *db.Manager
	Languages    *i18n.LanguageSource
	Translations *i18n.TranslationManager
	Templates    *TemplateSet
	Metrics      *Metrics
	Mail         mailer.Sender
}

// EmailTemplatePrefix is prepended to the template names passed to the
// emailer returned by Services.Emailer.
const EmailTemplatePrefix = "email/"

// Emailer renders "email/<template>" in language and sends the result
// through Mail.
func (s *Services) Emailer(ctx context.Context, language string) *mailer.TemplatedEmailer {
	return mailer.NewTemplatedEmailer(s.Templates.Parser(ctx, language), s.Mail, EmailTemplatePrefix)
}

// Factory builds a named command or view.
type Factory[T any] func(svc *Services) (T, error)

// Source reports whether a name is defined and instantiates it.
type Source[T any] interface {
	IsDefined(name string) bool
	Instantiate(name string) (T, error)
}

// Registry maps names to factories. It is safe for concurrent use.
type Registry[T any] struct {
	factories map[string]Factory[T]
	mu        sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register adds or replaces the factory for name.
func (r *Registry[T]) Register(name string, f Factory[T]) *Registry[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
	return r
}

// Add registers a prebuilt value under name.
func (r *Registry[T]) Add(name string, v T) *Registry[T] {
	return r.Register(name, func(*Services) (T, error) { return v, nil })
}

// Names returns the registered names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

func (r *Registry[T]) factory(name string) (Factory[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Bind returns a Source instantiating through svc.
func (r *Registry[T]) Bind(svc *Services) Source[T] {
	return &boundRegistry[T]{registry: r, svc: svc}
}

type boundRegistry[T any] struct {
	registry *Registry[T]
	svc      *Services
}

func (b *boundRegistry[T]) IsDefined(name string) bool {
	_, ok := b.registry.factory(name)
	return ok
}

func (b *boundRegistry[T]) Instantiate(name string) (T, error) {
	f, ok := b.registry.factory(name)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrNotDefined, name)
	}
	return f(b.svc)
}
