package esprit

import "github.com/dmitrymomot/esprit/internal"

// App options.
var (
	WithController      = internal.WithController
	WithMiddleware      = internal.WithMiddleware
	WithHandlers        = internal.WithHandlers
	WithStaticFiles     = internal.WithStaticFiles
	WithHealthChecks    = internal.WithHealthChecks
	WithMetricsEndpoint = internal.WithMetricsEndpoint

	WithLivenessPath   = internal.WithLivenessPath
	WithReadinessPath  = internal.WithReadinessPath
	WithReadinessCheck = internal.WithReadinessCheck
)

// Run options.
var (
	Address         = internal.Address
	Logger          = internal.Logger
	ShutdownTimeout = internal.ShutdownTimeout
	ShutdownHook    = internal.ShutdownHook
	Domain          = internal.Domain
	Fallback        = internal.Fallback
	WithContext     = internal.WithContext
)

// Controller options.
var (
	WithLogger           = internal.WithLogger
	WithCache            = internal.WithCache
	WithDatabases        = internal.WithDatabases
	WithTranslationStore = internal.WithTranslationStore
	WithTemplates        = internal.WithTemplates
	WithMappings         = internal.WithMappings
	WithCommands         = internal.WithCommands
	WithViews            = internal.WithViews
	WithCommandResolver  = internal.WithCommandResolver
	WithViewResolver     = internal.WithViewResolver
	WithRequestFlagger   = internal.WithRequestFlagger
	WithSessions         = internal.WithSessions
	WithSites            = internal.WithSites
	WithMetrics          = internal.WithMetrics
	WithErrorHandler     = internal.WithErrorHandler
	WithRequestIDFunc    = internal.WithRequestIDFunc
	WithMailSender       = internal.WithMailSender
)

// Session, site and template options.
var (
	WithSessionCookieName = internal.WithSessionCookieName
	WithSessionMaxAge     = internal.WithSessionMaxAge
	WithSessionDomain     = internal.WithSessionDomain
	WithSessionSecure     = internal.WithSessionSecure
	WithSessionSameSite   = internal.WithSessionSameSite
	WithSessionLogger     = internal.WithSessionLogger

	WithSite                = internal.WithSite
	WithLanguageNegotiation = internal.WithLanguageNegotiation

	WithTemplateTranslations = internal.WithTemplateTranslations
	WithTemplateLogger       = internal.WithTemplateLogger
)
