package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/esprit/pkg/cache"
	"github.com/dmitrymomot/esprit/pkg/config"
	"github.com/dmitrymomot/esprit/pkg/db"
	"github.com/dmitrymomot/esprit/pkg/i18n"
	"github.com/dmitrymomot/esprit/pkg/logger"
	"github.com/dmitrymomot/esprit/pkg/mailer"
	"github.com/dmitrymomot/esprit/pkg/session"
)

// ControllerOption configures a Controller.
type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	log              *logger.Logger
	cache            cache.Cache
	databases        *db.Manager
	translations     i18n.Store
	templates        fs.FS
	mappings         fs.FS
	sessions         SessionStarter
	sites            *SiteResolver
	registerer       prometheus.Registerer
	errorHandler     ErrorHandler
	requestID        func(context.Context) string
	mail             mailer.Sender
	commands         []*CommandRegistry
	views            []*ViewRegistry
	commandResolvers []CommandResolver
	viewResolvers    []ViewResolver
	flaggers         []RequestFlagger
}

// WithLogger sets the logger. Default: built from log_level, log_file and
// sentry_dsn.
func WithLogger(l *logger.Logger) ControllerOption {
	return func(o *controllerOptions) {
		o.log = l
	}
}

// WithCache sets the cache. Default: the backend named by cache_backend.
func WithCache(c cache.Cache) ControllerOption {
	return func(o *controllerOptions) {
		o.cache = c
	}
}

// WithDatabases sets the database manager. Default: db_dsn when set.
func WithDatabases(m *db.Manager) ControllerOption {
	return func(o *controllerOptions) {
		o.databases = m
	}
}

// WithTranslationStore sets where languages and translations live.
// Default: the languages tables of the default database, or an empty
// in-memory store without one.
func WithTranslationStore(s i18n.Store) ControllerOption {
	return func(o *controllerOptions) {
		o.translations = s
	}
}

// WithTemplates sets the file system templates are read from.
// Default: templates_dir.
func WithTemplates(fsys fs.FS) ControllerOption {
	return func(o *controllerOptions) {
		o.templates = fsys
	}
}

// WithMappings sets the file system command_mapping and view_mapping are
// read from. Default: the working directory.
func WithMappings(fsys fs.FS) ControllerOption {
	return func(o *controllerOptions) {
		o.mappings = fsys
	}
}

// WithCommands adds a command registry. Registries added later take
// precedence over earlier ones; the built-in commands come last.
func WithCommands(r *CommandRegistry) ControllerOption {
	return func(o *controllerOptions) {
		o.commands = append(o.commands, r)
	}
}

// WithViews adds a view registry, with the same precedence as WithCommands.
func WithViews(r *ViewRegistry) ControllerOption {
	return func(o *controllerOptions) {
		o.views = append(o.views, r)
	}
}

// WithCommandResolver adds r to the chain ahead of the mapping and path
// resolvers.
func WithCommandResolver(r CommandResolver) ControllerOption {
	return func(o *controllerOptions) {
		o.commandResolvers = append(o.commandResolvers, r)
	}
}

// WithViewResolver adds r to the chain ahead of the mapping and path
// resolvers.
func WithViewResolver(r ViewResolver) ControllerOption {
	return func(o *controllerOptions) {
		o.viewResolvers = append(o.viewResolvers, r)
	}
}

// WithRequestFlagger adds a flagger applied to every request.
func WithRequestFlagger(f RequestFlagger) ControllerOption {
	return func(o *controllerOptions) {
		o.flaggers = append(o.flaggers, f)
	}
}

// WithSessions replaces the cookie session manager.
func WithSessions(s SessionStarter) ControllerOption {
	return func(o *controllerOptions) {
		o.sessions = s
	}
}

// WithSites sets the site resolver. Default: one site on host.
func WithSites(r *SiteResolver) ControllerOption {
	return func(o *controllerOptions) {
		o.sites = r
	}
}

// WithMetrics registers the controller and cache collectors on reg.
func WithMetrics(reg prometheus.Registerer) ControllerOption {
	return func(o *controllerOptions) {
		o.registerer = reg
	}
}

// WithErrorHandler replaces the generic error page.
func WithErrorHandler(h ErrorHandler) ControllerOption {
	return func(o *controllerOptions) {
		o.errorHandler = h
	}
}

// WithRequestIDFunc sets how the request id shown on error pages is read
// from the request context.
func WithRequestIDFunc(fn func(context.Context) string) ControllerOption {
	return func(o *controllerOptions) {
		o.requestID = fn
	}
}

// WithMailSender sets the sender behind Services.Emailer. Default: Resend
// when resend_api_key is set, the log otherwise.
func WithMailSender(s mailer.Sender) ControllerOption {
	return func(o *controllerOptions) {
		o.mail = s
	}
}

// Controller turns one request into one response: it picks a command by
// URL, executes it and displays the result with a view.
type Controller struct {
	svc          *Services
	log          *logger.Logger
	views        *ViewManager
	fallbacks    *nameResolver[Command]
	sessions     SessionStarter
	sites        *SiteResolver
	errorHandler ErrorHandler
	requestID    func(context.Context) string
	cacheBackend cache.Backend
	fallbackName string
	commands     []CommandResolver
	flaggers     []RequestFlagger
	closeOnce    sync.Once
	closeErr     error
}

// NewController builds the collaborators named by cfg and the options.
func NewController(cfg *config.Config, opts ...ControllerOption) (*Controller, error) {
	if cfg == nil {
		cfg = config.FromMap(nil)
	}
	o := &controllerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	c := &Controller{
		errorHandler: o.errorHandler,
		requestID:    o.requestID,
		fallbackName: cfg.String(KeyFallbackCommand, DefaultFallbackName),
	}
	if c.errorHandler == nil {
		c.errorHandler = writeErrorPage
	}

	log := o.log
	if log == nil {
		l, err := NewLoggerFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("controller: logger: %w", err)
		}
		log = l
	}
	c.log = log.WithOrigin("CONTROLLER")

	if err := c.init(cfg, o, log); err != nil {
		c.log.LogEvent(context.Background(), logger.EventFromError(err, "CONTROLLER"))
		return nil, fmt.Errorf("controller: %w", err)
	}
	c.log.Config("controller ready",
		slog.Int("command_resolvers", len(c.commands)),
		slog.String("fallback", c.fallbackName),
	)
	return c, nil
}

func (c *Controller) init(cfg *config.Config, o *controllerOptions, log *logger.Logger) error {
	ctx := context.Background()
	debugMode := cfg.Bool(KeyDebug, false)
	useDefaults := cfg.Bool(KeyUseDefaultResolvers, true)

	store := o.cache
	if store == nil {
		cc, backend, err := NewCacheFromConfig(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		store, c.cacheBackend = cc, backend
	}

	databases := o.databases
	if databases == nil {
		databases = NewDatabasesFromConfig(cfg, log)
	}

	translationStore := o.translations
	if translationStore == nil {
		if databases != nil {
			translationStore = i18n.NewPostgresStore(databases.Ref(db.DefaultHandle))
		} else {
			translationStore = i18n.NewMemoryStore()
		}
	}
	languages := i18n.NewLanguageSource(translationStore, store)
	translations := i18n.NewTranslationManager(translationStore, languages, store)

	templatesFS := o.templates
	if templatesFS == nil {
		if dir := cfg.String(KeyTemplatesDir, ""); dir != "" {
			templatesFS = os.DirFS(dir)
		}
	}
	templates, err := NewTemplateSet(templatesFS, WithTemplateTranslations(translations), WithTemplateLogger(log))
	if err != nil {
		return err
	}

	metrics, err := NewMetrics(o.registerer)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	c.svc = &Services{
		Config:       cfg,
		Logger:       log,
		Cache:        store,
		Databases:    databases,
		Languages:    languages,
		Translations: translations,
		Templates:    templates,
		Metrics:      metrics,
		Mail:         o.mail,
	}
	if c.svc.Mail == nil {
		c.svc.Mail = NewMailerFromConfig(cfg, log)
	}

	commandSources := bindAll(c.svc, CoreCommands(), o.commands)
	viewSources := bindAll(c.svc, CoreViews(), o.views)

	c.fallbacks = &nameResolver[Command]{}
	for _, s := range commandSources {
		c.fallbacks.RegisterSource(s)
	}

	mappings := o.mappings
	if mappings == nil {
		mappings = os.DirFS(".")
	}

	// Commands: debug tools, custom resolvers, the mapping file, paths.
	if debugMode {
		var tool *i18n.TranslationTool
		if w, ok := translationStore.(i18n.WritableStore); ok {
			tool = i18n.NewTranslationTool(w, translations)
		}
		c.commands = append(c.commands, NewDebugCommandResolver(tool, log))
	}
	c.commands = append(c.commands, o.commandResolvers...)
	if name := cfg.String(KeyCommandMapping, ""); name != "" {
		c.commands = append(c.commands, NewXMLCommandResolver(mappings, name, commandSources...))
	}
	if useDefaults {
		c.commands = append(c.commands, NewPathCommandResolver(commandSources...))
	}

	c.views = NewViewManager(templates, FallbackView{}, log)
	c.views.metrics = metrics
	if debugMode {
		c.views.AddViewResolver(NewDebugViewResolver(templates))
	}
	for _, r := range o.viewResolvers {
		c.views.AddViewResolver(r)
	}
	if name := cfg.String(KeyViewMapping, ""); name != "" {
		c.views.AddViewResolver(NewXMLViewResolver(mappings, name, log, viewSources...))
	}
	if useDefaults {
		c.views.AddViewResolver(NewPathViewResolver(viewSources...))
		c.views.AddViewResolver(NewCatchallViewResolver(NewDefaultView(templates)))
	}

	c.sessions = o.sessions
	if c.sessions == nil {
		c.sessions = NewSessionManager(session.NewCacheStore(store.AccessNamespace("sessions")), WithSessionLogger(log))
	}

	c.sites = o.sites
	if c.sites == nil {
		c.sites = NewSiteResolver(&Site{Domain: cfg.String(KeyHost, "")})
	}

	c.flaggers = o.flaggers
	return nil
}

// bindAll binds the built-in registry and the user registries. The result
// is in registration order, so the last registry has the highest priority
// once prepended by a resolver.
func bindAll[T any](svc *Services, core *Registry[T], user []*Registry[T]) []Source[T] {
	sources := make([]Source[T], 0, len(user)+1)
	sources = append(sources, core.Bind(svc))
	for _, r := range user {
		sources = append(sources, r.Bind(svc))
	}
	return sources
}

// Services returns what factories were bound with.
func (c *Controller) Services() *Services { return c.svc }

// Logger returns the controller's logger.
func (c *Controller) Logger() *logger.Logger { return c.svc.Logger }

// ViewManager returns the view manager, for adding resolvers after
// construction.
func (c *Controller) ViewManager() *ViewManager { return c.views }

// Sites returns the site resolver.
func (c *Controller) Sites() *SiteResolver { return c.sites }

// ServeHTTP runs the controller for r.
func (c *Controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Run(r.Context(), EnvironmentFromRequest(r), w)
}

// Run serves one request. It never returns an error: failures are logged
// and answered with the error page when nothing has been sent yet.
func (c *Controller) Run(ctx context.Context, env Environment, w http.ResponseWriter) {
	out := NewOutput(w)
	ctx = cache.WithMemo(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			c.log.SevereContext(ctx, "panic while serving request",
				slog.Any("panic", rec),
				slog.String("uri", env.RequestURI),
				slog.String("stack", string(debug.Stack())),
			)
			_ = c.log.Flush()
			c.fail(ctx, out, fmt.Errorf("panic: %v", rec))
		}
	}()

	if err := c.run(ctx, env, out); err != nil {
		c.log.LogEvent(ctx, logger.EventFromError(err, "CONTROLLER"))
		c.fail(ctx, out, err)
	}
}

func (c *Controller) run(ctx context.Context, env Environment, out *Output) error {
	sess := c.startSession(ctx, env, out)

	req, err := c.buildRequest(env, sess)
	if err != nil {
		return err
	}

	cmd, isFallback, err := c.resolveCommand(ctx, req)
	if err != nil {
		return err
	}

	resp := NewResponse(req)
	if err := c.execute(ctx, cmd, isFallback, req, resp); err != nil {
		var redirect *RedirectError
		if errors.As(err, &redirect) {
			c.log.FinestContext(ctx, "redirecting", slog.String("location", redirect.Location))
			out.SetHeader("Location", redirect.Location)
			out.SetStatus(redirect.Status())
			out.Finish()
			return nil
		}
		return err
	}

	return c.views.Display(ctx, out, resp)
}

// startSession returns nil when the session store fails; the request is
// then served without a session.
func (c *Controller) startSession(ctx context.Context, env Environment, out *Output) *session.Session {
	sess, err := c.sessions.StartSession(ctx, env)
	if err != nil {
		c.log.ErrorContext(ctx, "unable to start session", slog.String("error", err.Error()))
		return nil
	}
	out.OnBeforeWrite(func() {
		if err := c.sessions.CommitSession(ctx, out, sess); err != nil {
			c.log.ErrorContext(ctx, "unable to save session", slog.String("error", err.Error()))
		}
	})
	return sess
}

func (c *Controller) buildRequest(env Environment, sess *session.Session) (*Request, error) {
	uri := env.RequestURI
	if uri == "" {
		uri = "/"
	}
	u, err := ParseURL(uri, env.Host)
	if err != nil {
		return nil, &BadUserInputError{Field: "uri", Err: err}
	}

	req := NewRequestBuilder().
		Site(c.sites.Resolve(env)).
		Session(sess).
		GetData(env.Query).
		PostData(env.Form).
		ServerData(env.Server).
		Headers(env.Headers).
		Method(env.Method).
		URL(u).
		Build()

	for _, f := range c.flaggers {
		f.ProcessRequest(req)
	}
	return req, nil
}

// resolveCommand also reports whether the command is the fallback.
func (c *Controller) resolveCommand(ctx context.Context, req *Request) (Command, bool, error) {
	cmd, i, err := resolveCommands(ctx, c.commands, req)
	if err != nil {
		return nil, false, err
	}
	if cmd != nil {
		c.svc.Metrics.commandResolved(resolverKind(c.commands[i]))
		return cmd, false, nil
	}

	c.log.WarningContext(ctx, "no command matched, using fallback",
		slog.String("path", req.URL().Path),
		slog.String("fallback", c.fallbackName),
	)
	c.svc.Metrics.fallback()
	cmd, err = c.fallbackCommand()
	return cmd, true, err
}

func (c *Controller) fallbackCommand() (Command, error) {
	cmd, ok, err := c.fallbacks.lookup(c.fallbackName)
	if err != nil {
		return nil, fmt.Errorf("%w: fallback command %q: %w", ErrUnserviceableRequest, c.fallbackName, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: fallback command %q is not defined", ErrUnserviceableRequest, c.fallbackName)
	}
	return cmd, nil
}

// execute runs cmd. A command reporting a missing page is replaced once by
// the fallback command with the response marked not found. The fallback
// itself is never run twice.
func (c *Controller) execute(ctx context.Context, cmd Command, isFallback bool, req *Request, resp *Response) error {
	resp.SetCommandName(cmd.Name())
	err := cmd.Execute(ctx, req, resp)
	if !errors.Is(err, ErrPageNotFound) {
		return err
	}
	if isFallback {
		return fmt.Errorf("%w: fallback command reported page not found", ErrUnserviceableRequest)
	}

	c.log.Log(ctx, logger.LevelFine, "page not found, retrying with fallback",
		slog.String("path", req.URL().Path),
		slog.String("command", cmd.Name()),
	)
	c.svc.Metrics.notFoundRetry()

	fallback, ferr := c.fallbackCommand()
	if ferr != nil {
		return ferr
	}
	resp.SetNotFound(true)
	resp.SetCommandName(fallback.Name())
	if err := fallback.Execute(ctx, req, resp); err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return fmt.Errorf("%w: fallback command reported page not found", ErrUnserviceableRequest)
		}
		return err
	}
	return nil
}

func (c *Controller) fail(ctx context.Context, out *Output, err error) {
	c.svc.Metrics.failure()
	if out.Written() {
		return
	}

	opts := []HTTPErrorOption{WithError(err)}
	if c.requestID != nil {
		if id := c.requestID(ctx); id != "" {
			opts = append(opts, WithRequestID(id))
		}
	}

	page := ErrInternal(opts...)
	var badInput *BadUserInputError
	if errors.As(err, &badInput) {
		page = NewHTTPError(http.StatusBadRequest, "The request could not be understood.",
			append(opts, WithTitle("Bad Request"))...)
	}
	c.errorHandler(out, page)
}

// Flush forces every log recorder to deliver what it buffered.
func (c *Controller) Flush(context.Context) error {
	return c.svc.Logger.Flush()
}

// Close releases the databases, the cache backend opened from config and
// the log recorders. Every step runs even when an earlier one fails.
// Close is idempotent.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		var errs []error
		guard := func(step string, fn func() error) {
			defer func() {
				if rec := recover(); rec != nil {
					errs = append(errs, fmt.Errorf("%s: panic: %v", step, rec))
				}
			}()
			if err := fn(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", step, err))
			}
		}

		if c.svc.Databases != nil {
			guard("close databases", c.svc.Databases.Close)
		}
		if c.cacheBackend != nil {
			guard("close cache", c.cacheBackend.Close)
		}
		if len(errs) > 0 {
			c.log.Error("teardown failed", slog.String("error", errors.Join(errs...).Error()))
		}

		log := c.svc.Logger
		for _, r := range log.Recorders() {
			guard("flush recorder", r.Flush)
			guard("close recorder", r.Close)
			log.RemoveRecorder(r)
		}
		guard("close logger", log.Close)

		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}
