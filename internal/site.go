package internal

import (
	"github.com/dmitrymomot/esprit/pkg/hostrouter"
	"github.com/dmitrymomot/esprit/pkg/i18n"
)

// Site is one domain served by the application and its language.
type Site struct {
	Language *i18n.Language
	Domain   string
	ID       int64
}

// SiteResolver picks the Site for a request host.
type SiteResolver struct {
	sites     *hostrouter.Table[*Site]
	def       *Site
	languages []*i18n.Language
}

// SiteOption configures a SiteResolver.
type SiteOption func(*SiteResolver)

// WithSite serves site for the host pattern ("example.com" or
// "*.example.com").
func WithSite(pattern string, site *Site) SiteOption {
	return func(r *SiteResolver) {
		if site != nil {
			r.sites.Add(pattern, site)
		}
	}
}

// WithLanguageNegotiation lets Accept-Language pick among languages,
// falling back to the site language.
func WithLanguageNegotiation(languages ...*i18n.Language) SiteOption {
	return func(r *SiteResolver) {
		r.languages = append(r.languages, languages...)
	}
}

// NewSiteResolver returns a resolver that answers def for unknown hosts.
func NewSiteResolver(def *Site, opts ...SiteOption) *SiteResolver {
	if def == nil {
		def = &Site{}
	}
	r := &SiteResolver{
		sites: hostrouter.NewTable[*Site](nil),
		def:   def,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns the site used for unmatched hosts.
func (r *SiteResolver) Default() *Site { return r.def }

// Resolve returns the site for env's host. With negotiation enabled the
// returned site is a copy carrying the negotiated language.
func (r *SiteResolver) Resolve(env Environment) *Site {
	site, ok := r.sites.Match(env.Host)
	if !ok {
		site = r.def
	}
	if len(r.languages) == 0 {
		return site
	}

	header := env.Headers.Get("Accept-Language")
	if header == "" {
		return site
	}
	candidates := r.languages
	if site.Language != nil {
		candidates = append([]*i18n.Language{site.Language}, r.languages...)
	}
	lang := i18n.Negotiate(header, candidates)
	if lang == nil || (site.Language != nil && lang.ID == site.Language.ID) {
		return site
	}
	negotiated := *site
	negotiated.Language = lang
	return &negotiated
}
