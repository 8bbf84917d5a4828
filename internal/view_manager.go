package internal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// ViewManager pairs responses with views and displays them. All output of
// the controller goes through it.
type ViewManager struct {
	fallback  View
	templates *TemplateSet
	log       *logger.Logger
	metrics   *Metrics
	resolvers []ViewResolver
	mu        sync.RWMutex
}

// NewViewManager creates a manager with no resolvers. Responses nothing
// resolves are shown with fallback.
func NewViewManager(templates *TemplateSet, fallback View, l *logger.Logger) *ViewManager {
	if l == nil {
		l = logger.NewNope()
	}
	return &ViewManager{
		fallback:  fallback,
		templates: templates,
		log:       l.WithOrigin("VIEW_MANAGER"),
	}
}

// AddViewResolver appends r to the chain.
func (m *ViewManager) AddViewResolver(r ViewResolver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolvers = append(m.resolvers, r)
}

// Templates returns the template set views render from.
func (m *ViewManager) Templates() *TemplateSet { return m.templates }

// Resolve runs the chain. The first resolver returning a view wins.
func (m *ViewManager) Resolve(ctx context.Context, resp *Response) (View, error) {
	m.mu.RLock()
	chain := m.resolvers
	m.mu.RUnlock()

	for i, r := range chain {
		view, err := r.Resolve(ctx, resp)
		if err != nil {
			return nil, fmt.Errorf("view resolver %d: %w", i, err)
		}
		if view != nil {
			m.metrics.viewResolved(resolverKind(r))
			return view, nil
		}
	}
	return nil, nil
}

// Display resolves a view for resp, or uses the fallback view, and lets
// it write to out.
func (m *ViewManager) Display(ctx context.Context, out *Output, resp *Response) error {
	view, err := m.Resolve(ctx, resp)
	if err != nil {
		return err
	}
	if view == nil {
		m.log.ErrorContext(ctx, "no matching view found",
			slog.String("path", resp.Request().URL().Path),
			slog.String("command", resp.CommandName()),
		)
		m.metrics.viewResolved("fallback")
		view = m.fallback
	}

	m.log.FinestContext(ctx, "displaying view", slog.String("view", fmt.Sprintf("%T", view)))

	if err := view.Display(ctx, out, resp); err != nil {
		return err
	}
	out.Finish()
	return nil
}
