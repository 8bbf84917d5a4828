package esprit

import (
	"github.com/dmitrymomot/esprit/internal"
	"github.com/dmitrymomot/esprit/pkg/session"
)

// Type aliases - public API
type (
	// App mounts a controller behind a chi router.
	App = internal.App

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Handler declares explicit routes served before the controller.
	Handler = internal.Handler

	// HandlerFunc adapts a route declaration function to Handler.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps the whole router.
	Middleware = internal.Middleware

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// CheckFunc reports whether a dependency can serve traffic.
	CheckFunc = internal.CheckFunc

	// Controller turns one HTTP request into one response.
	Controller = internal.Controller

	// ControllerOption configures NewController.
	ControllerOption = internal.ControllerOption

	// Services are the collaborators handed to command and view factories.
	Services = internal.Services

	// Metrics counts how requests move through the controller.
	Metrics = internal.Metrics

	Command             = internal.Command
	CommandResolver     = internal.CommandResolver
	CommandResolverFunc = internal.CommandResolverFunc
	CommandSource       = internal.CommandSource
	CommandRegistry     = internal.CommandRegistry

	View             = internal.View
	ViewFunc         = internal.ViewFunc
	ViewResolver     = internal.ViewResolver
	ViewResolverFunc = internal.ViewResolverFunc
	ViewSource       = internal.ViewSource
	ViewRegistry     = internal.ViewRegistry
	ViewManager      = internal.ViewManager
	ComponentView    = internal.ComponentView
	FallbackView     = internal.FallbackView

	PathCommandResolver  = internal.PathCommandResolver
	PathViewResolver     = internal.PathViewResolver
	XMLCommandResolver   = internal.XMLCommandResolver
	XMLViewResolver      = internal.XMLViewResolver
	CommandRule          = internal.CommandRule
	CatchallViewResolver = internal.CatchallViewResolver

	// Environment is the raw request data the controller starts from.
	Environment = internal.Environment

	// Request is the immutable view of one HTTP request.
	Request = internal.Request

	// RequestBuilder assembles a Request, mostly for tests.
	RequestBuilder = internal.RequestBuilder

	// RequestFlagger marks requests with named flags before resolution.
	RequestFlagger     = internal.RequestFlagger
	RequestFlaggerFunc = internal.RequestFlaggerFunc

	// Response carries the values a command hands to its view.
	Response = internal.Response

	// Output is the response writer views write to.
	Output = internal.Output

	// Status is one of the HTTP statuses views may emit.
	Status = internal.Status

	// URL is a parsed site-relative address.
	URL = internal.URL

	Site         = internal.Site
	SiteResolver = internal.SiteResolver
	SiteOption   = internal.SiteOption

	TemplateSet    = internal.TemplateSet
	TemplateParser = internal.TemplateParser
	TemplateOption = internal.TemplateOption

	SessionStarter = internal.SessionStarter
	SessionManager = internal.SessionManager
	SessionOption  = internal.SessionOption

	// Session represents a user session.
	Session = session.Session

	// SessionStore defines the interface for session persistence.
	SessionStore = session.Store

	HTTPError         = internal.HTTPError
	HTTPErrorOption   = internal.HTTPErrorOption
	ErrorHandler      = internal.ErrorHandler
	RedirectError     = internal.RedirectError
	BadUserInputError = internal.BadUserInputError
	IndexError        = internal.IndexError

	// Scalar is a type a request parameter can be parsed into.
	Scalar = internal.Scalar
)

// Registry maps names to command or view factories.
type Registry[T any] = internal.Registry[T]

// Factory builds a named command or view.
type Factory[T any] = internal.Factory[T]

// Source reports whether a name is defined and instantiates it.
type Source[T any] = internal.Source[T]

// Statuses views may emit.
const (
	StatusOK                  = internal.StatusOK
	StatusMovedPermanently    = internal.StatusMovedPermanently
	StatusTemporaryRedirect   = internal.StatusTemporaryRedirect
	StatusForbidden           = internal.StatusForbidden
	StatusFileNotFound        = internal.StatusFileNotFound
	StatusInternalServerError = internal.StatusInternalServerError
)

// Names of the built-in commands, views and templates.
const (
	IndexName           = internal.IndexName
	DefaultFallbackName = internal.DefaultFallbackName
	ActionRecordName    = internal.ActionRecordName
	JsErrorRecordName   = internal.JsErrorRecordName
	TranslationToolName = internal.TranslationToolName
	DefaultTemplate     = internal.DefaultTemplate
	NotFoundKey         = internal.NotFoundKey
	TemplateExt         = internal.TemplateExt
	EmailTemplatePrefix = internal.EmailTemplatePrefix
)

// Configuration keys read by NewController.
const (
	KeyDBDSN               = internal.KeyDBDSN
	KeyDBUser              = internal.KeyDBUser
	KeyDBPass              = internal.KeyDBPass
	KeyCacheBackend        = internal.KeyCacheBackend
	KeyCacheServers        = internal.KeyCacheServers
	KeyRedisURL            = internal.KeyRedisURL
	KeyFallbackCommand     = internal.KeyFallbackCommand
	KeyUseDefaultResolvers = internal.KeyUseDefaultResolvers
	KeyTemplatesDir        = internal.KeyTemplatesDir
	KeyCommandMapping      = internal.KeyCommandMapping
	KeyViewMapping         = internal.KeyViewMapping
	KeyHost                = internal.KeyHost
	KeyDebug               = internal.KeyDebug
	KeyLogFile             = internal.KeyLogFile
	KeyLogLevel            = internal.KeyLogLevel
	KeySentryDSN           = internal.KeySentryDSN
	KeyEnvironment         = internal.KeyEnvironment
	KeyAddress             = internal.KeyAddress
	KeyResendAPIKey        = internal.KeyResendAPIKey
	KeyMailFrom            = internal.KeyMailFrom
)

// Cache backends accepted by cache_backend.
const (
	CacheMemcached = internal.CacheMemcached
	CacheRedis     = internal.CacheRedis
	CacheMemory    = internal.CacheMemory
	CacheBlackhole = internal.CacheBlackhole
)

// Server variables of a Request.
const (
	ServerRemoteAddr   = internal.ServerRemoteAddr
	ServerUserAgent    = internal.ServerUserAgent
	ServerMethod       = internal.ServerMethod
	ServerRequestURI   = internal.ServerRequestURI
	ServerName         = internal.ServerName
	ServerHTTPS        = internal.ServerHTTPS
	ServerQueryString  = internal.ServerQueryString
	ServerForwardedFor = internal.ServerForwardedFor
	ServerRealIP       = internal.ServerRealIP
)

// Errors.
var (
	ErrIndexOutOfBounds      = internal.ErrIndexOutOfBounds
	ErrMalformedURL          = internal.ErrMalformedURL
	ErrPageNotFound          = internal.ErrPageNotFound
	ErrUnserviceableRequest  = internal.ErrUnserviceableRequest
	ErrResourceLoading       = internal.ErrResourceLoading
	ErrTemplateConfiguration = internal.ErrTemplateConfiguration
	ErrTemplateNotFound      = internal.ErrTemplateNotFound
	ErrNotDefined            = internal.ErrNotDefined
)

// Application and server.
var (
	// New creates an application.
	New = internal.New

	// Run serves one or more applications, routed by host.
	Run = internal.Run

	// ShutdownFunc adapts func() error to a shutdown hook.
	ShutdownFunc = internal.ShutdownFunc
)

// Controller and collaborators.
var (
	NewController           = internal.NewController
	NewCommand              = internal.NewCommand
	NewCommandRegistry      = internal.NewCommandRegistry
	NewViewRegistry         = internal.NewViewRegistry
	CoreCommands            = internal.CoreCommands
	CoreViews               = internal.CoreViews
	NewDefaultView          = internal.NewDefaultView
	NewComponentView        = internal.NewComponentView
	NewViewManager          = internal.NewViewManager
	NewPathCommandResolver  = internal.NewPathCommandResolver
	NewPathViewResolver     = internal.NewPathViewResolver
	NewXMLCommandResolver   = internal.NewXMLCommandResolver
	NewXMLViewResolver      = internal.NewXMLViewResolver
	NewCatchallViewResolver = internal.NewCatchallViewResolver
	NewTemplateSet          = internal.NewTemplateSet
	NewSessionManager       = internal.NewSessionManager
	NewSiteResolver         = internal.NewSiteResolver
	NewMetrics              = internal.NewMetrics
	NewRequestBuilder       = internal.NewRequestBuilder
	NewResponse             = internal.NewResponse
	NewOutput               = internal.NewOutput
	EnvironmentFromRequest  = internal.EnvironmentFromRequest
	ParseURL                = internal.ParseURL
	SegmentName             = internal.SegmentName
	CandidateNames          = internal.CandidateNames

	NewLoggerFromConfig    = internal.NewLoggerFromConfig
	NewCacheFromConfig     = internal.NewCacheFromConfig
	NewDatabasesFromConfig = internal.NewDatabasesFromConfig
	NewMailerFromConfig    = internal.NewMailerFromConfig
)

// Errors and redirects returned by commands.
var (
	Redirect          = internal.Redirect
	PermanentRedirect = internal.PermanentRedirect
	NewHTTPError      = internal.NewHTTPError
	ErrInternal       = internal.ErrInternal
	AsHTTPError       = internal.AsHTTPError
	WithTitle         = internal.WithTitle
	WithRequestID     = internal.WithRequestID
	WithError         = internal.WithError
)
