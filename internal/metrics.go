package internal

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/esprit/pkg/cache"
)

// Metrics counts how requests move through the controller. A nil
// *Metrics records nothing.
type Metrics struct {
	commands        *prometheus.CounterVec
	views           *prometheus.CounterVec
	fallbacks       prometheus.Counter
	notFoundRetries prometheus.Counter
	failures        prometheus.Counter
	actions         *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them, together with the
// cache collectors, on reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esprit",
			Subsystem: "controller",
			Name:      "commands_resolved_total",
			Help:      "Commands resolved, by resolver kind.",
		}, []string{"resolver"}),
		views: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esprit",
			Subsystem: "controller",
			Name:      "views_resolved_total",
			Help:      "Views resolved, by resolver kind.",
		}, []string{"resolver"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "esprit",
			Subsystem: "controller",
			Name:      "fallback_commands_total",
			Help:      "Requests no command resolver matched.",
		}),
		notFoundRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "esprit",
			Subsystem: "controller",
			Name:      "not_found_retries_total",
			Help:      "Commands that reported a missing page and were retried with the fallback.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "esprit",
			Subsystem: "controller",
			Name:      "failures_total",
			Help:      "Requests answered with the generic error page.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esprit",
			Subsystem: "client",
			Name:      "actions_total",
			Help:      "Client actions recorded, by identifier.",
		}, []string{"identifier"}),
	}
	if reg == nil {
		return m, nil
	}

	collectors := append([]prometheus.Collector{
		m.commands, m.views, m.fallbacks, m.notFoundRetries, m.failures, m.actions,
	}, cache.Collectors()...)
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) commandResolved(kind string) {
	if m != nil {
		m.commands.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) viewResolved(kind string) {
	if m != nil {
		m.views.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) fallback() {
	if m != nil {
		m.fallbacks.Inc()
	}
}

func (m *Metrics) notFoundRetry() {
	if m != nil {
		m.notFoundRetries.Inc()
	}
}

func (m *Metrics) failure() {
	if m != nil {
		m.failures.Inc()
	}
}

// RecordAction counts a client action.
func (m *Metrics) RecordAction(identifier string) {
	if m != nil {
		m.actions.WithLabelValues(identifier).Inc()
	}
}

func resolverKind(r any) string {
	switch r.(type) {
	case *PathCommandResolver, *PathViewResolver:
		return "path"
	case *XMLCommandResolver, *XMLViewResolver:
		return "xml"
	case *CatchallViewResolver:
		return "catchall"
	case *DebugCommandResolver:
		return "debug"
	default:
		return "custom"
	}
}
