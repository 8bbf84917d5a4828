package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/internal"
	"github.com/dmitrymomot/esprit/pkg/config"
	"github.com/dmitrymomot/esprit/pkg/i18n"
	"github.com/dmitrymomot/esprit/pkg/logger"
	"github.com/dmitrymomot/esprit/pkg/mailer"
)

var controllerTemplates = map[string]string{
	"Default.html":       `default:{{with .title}}{{.}}{{end}}{{if .IS_404}}:404{{end}}`,
	"About.html":         `about:{{.team}}`,
	"email/welcome.html": `{{t "welcome"}}, {{.name}}!`,
}

type controllerFixture struct {
	ctrl *internal.Controller
	logs *logger.MemoryRecorder
	reg  *prometheus.Registry
}

func newController(t *testing.T, values map[string]string, opts ...internal.ControllerOption) *controllerFixture {
	t.Helper()

	cfg := map[string]string{internal.KeyCacheBackend: internal.CacheMemory}
	for k, v := range values {
		cfg[k] = v
	}

	logs := logger.NewMemoryRecorder(logger.LevelFinest)
	reg := prometheus.NewRegistry()
	opts = append([]internal.ControllerOption{
		internal.WithLogger(logger.New(logger.WithRecorder(logs))),
		internal.WithTemplates(templatesFS(controllerTemplates)),
		internal.WithMetrics(reg),
	}, opts...)

	ctrl, err := internal.NewController(config.FromMap(cfg), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctrl.Close() })

	return &controllerFixture{ctrl: ctrl, logs: logs, reg: reg}
}

func (f *controllerFixture) get(uri string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.ctrl.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, uri, nil))
	return rec
}

func userCommands(cmds ...internal.Command) internal.ControllerOption {
	reg := internal.NewCommandRegistry()
	for _, c := range cmds {
		reg.Add(c.Name(), c)
	}
	return internal.WithCommands(reg)
}

func TestControllerIndex(t *testing.T) {
	t.Parallel()
	f := newController(t, nil)

	rec := f.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "default:", rec.Body.String())
	require.NoError(t, testutil.GatherAndCompare(f.reg, strings.NewReader(`
# HELP esprit_controller_commands_resolved_total Commands resolved, by resolver kind.
# TYPE esprit_controller_commands_resolved_total counter
esprit_controller_commands_resolved_total{resolver="path"} 1
`), "esprit_controller_commands_resolved_total"))
}

func TestControllerPathResolution(t *testing.T) {
	t.Parallel()

	about := internal.NewCommand("About", func(_ context.Context, _ *internal.Request, resp *internal.Response) error {
		resp.Set("team", "ada,grace")
		return nil
	})
	views := internal.NewViewRegistry().Register("About", func(svc *internal.Services) (internal.View, error) {
		return internal.ViewFunc(func(ctx context.Context, out *internal.Output, resp *internal.Response) error {
			p := svc.Templates.Parser(ctx, resp.Request().Language())
			p.LoadResponse(resp)
			return p.DisplayTemplate(out, "About")
		}), nil
	})
	f := newController(t, nil, userCommands(about), internal.WithViews(views))

	for _, uri := range []string{"/about", "/about/team/bios"} {
		rec := f.get(uri)
		assert.Equal(t, http.StatusOK, rec.Code, uri)
		assert.Equal(t, "about:ada,grace", rec.Body.String(), uri)
	}
}

func TestControllerFallback(t *testing.T) {
	t.Parallel()

	t.Run("unmatched path", func(t *testing.T) {
		t.Parallel()
		f := newController(t, nil)

		rec := f.get("/no/such/page")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "default::404", rec.Body.String())
		assert.True(t, f.logs.Contains(logger.LevelWarning, "no command matched"))

		var warned bool
		for _, e := range f.logs.Entries() {
			if e.Level == logger.LevelWarning && strings.Contains(e.Message, "no command matched") {
				warned = true
				assert.Equal(t, "no/such/page", e.Attrs["path"])
				assert.Equal(t, internal.DefaultFallbackName, e.Attrs["fallback"])
			}
		}
		assert.True(t, warned)
	})

	t.Run("custom fallback name", func(t *testing.T) {
		t.Parallel()
		oops := internal.NewCommand("Oops", func(_ context.Context, _ *internal.Request, resp *internal.Response) error {
			resp.Set("title", "oops")
			return nil
		})
		f := newController(t, map[string]string{internal.KeyFallbackCommand: "Oops"}, userCommands(oops))

		rec := f.get("/missing")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "default:oops", rec.Body.String())
	})

	t.Run("undefined fallback", func(t *testing.T) {
		t.Parallel()
		f := newController(t, map[string]string{internal.KeyFallbackCommand: "Nope"})

		rec := f.get("/missing")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Internal Server Error")
		assert.NotContains(t, rec.Body.String(), "Nope")
	})
}

func TestControllerPageNotFoundRetry(t *testing.T) {
	t.Parallel()

	t.Run("retried once with fallback", func(t *testing.T) {
		t.Parallel()
		article := internal.NewCommand("Article", func(_ context.Context, _ *internal.Request, resp *internal.Response) error {
			resp.Set("title", "draft")
			return internal.ErrPageNotFound
		})
		f := newController(t, nil, userCommands(article))

		rec := f.get("/article/42")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "default:draft:404", rec.Body.String())
	})

	t.Run("fallback reporting not found", func(t *testing.T) {
		t.Parallel()
		lost := internal.NewCommand("Lost", func(context.Context, *internal.Request, *internal.Response) error {
			return internal.ErrPageNotFound
		})
		f := newController(t, map[string]string{internal.KeyFallbackCommand: "Lost"}, userCommands(lost))

		rec := f.get("/lost")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, f.logs.Contains(logger.LevelError, "unserviceable request"))
	})

	t.Run("fallback runs once", func(t *testing.T) {
		t.Parallel()
		var runs atomic.Int32
		lost := internal.NewCommand("Lost", func(context.Context, *internal.Request, *internal.Response) error {
			runs.Add(1)
			return internal.ErrPageNotFound
		})
		article := internal.NewCommand("Article", func(context.Context, *internal.Request, *internal.Response) error {
			return internal.ErrPageNotFound
		})
		f := newController(t, map[string]string{internal.KeyFallbackCommand: "Lost"}, userCommands(lost, article))

		rec := f.get("/nothing/here")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, int32(1), runs.Load())
		assert.False(t, f.logs.Contains(logger.LevelFine, "retrying with fallback"))

		rec = f.get("/article/7")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, int32(2), runs.Load())
		assert.True(t, f.logs.Contains(logger.LevelFine, "retrying with fallback"))
	})
}

func TestControllerRedirect(t *testing.T) {
	t.Parallel()

	moved := internal.NewCommand("Old", func(context.Context, *internal.Request, *internal.Response) error {
		return internal.PermanentRedirect("/new")
	})
	login := internal.NewCommand("Account", func(context.Context, *internal.Request, *internal.Response) error {
		return internal.Redirect("/login")
	})
	f := newController(t, nil, userCommands(moved, login))

	rec := f.get("/old")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/new", rec.Header().Get("Location"))

	rec = f.get("/account")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestControllerFailures(t *testing.T) {
	t.Parallel()

	t.Run("panic", func(t *testing.T) {
		t.Parallel()
		crash := internal.NewCommand("Crash", func(context.Context, *internal.Request, *internal.Response) error {
			panic("database exploded")
		})
		f := newController(t, nil, userCommands(crash))

		rec := f.get("/crash")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "database exploded")
		assert.True(t, f.logs.Contains(logger.LevelSevere, "panic while serving request"))
	})

	t.Run("custom error handler and request id", func(t *testing.T) {
		t.Parallel()
		crash := internal.NewCommand("Crash", func(context.Context, *internal.Request, *internal.Response) error {
			return assert.AnError
		})
		var got *internal.HTTPError
		f := newController(t, nil,
			userCommands(crash),
			internal.WithRequestIDFunc(func(context.Context) string { return "req-42" }),
			internal.WithErrorHandler(func(out *internal.Output, e *internal.HTTPError) {
				got = e
				out.SetStatus(internal.Status(e.Code))
				_, _ = out.Write([]byte("sorry"))
			}),
		)

		rec := f.get("/crash")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "sorry", rec.Body.String())
		require.NotNil(t, got)
		assert.Equal(t, "req-42", got.RequestID)
		assert.ErrorIs(t, got, assert.AnError)
	})

	t.Run("error after body is written", func(t *testing.T) {
		t.Parallel()
		views := internal.NewViewRegistry().Add("Partial", internal.ViewFunc(
			func(_ context.Context, out *internal.Output, _ *internal.Response) error {
				_, _ = out.Write([]byte("half"))
				return assert.AnError
			}))
		f := newController(t, nil, userCommands(namedCommand("Partial")), internal.WithViews(views))

		rec := f.get("/partial")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "half", rec.Body.String())
	})
}

func TestControllerSession(t *testing.T) {
	t.Parallel()

	counter := internal.NewCommand("Counter", func(_ context.Context, req *internal.Request, resp *internal.Response) error {
		n := internal.SessionValue[float64](req, "n") + 1
		req.Session().Set("n", n)
		resp.Set("title", n)
		return nil
	})
	f := newController(t, nil, userCommands(counter))

	rec := f.get("/counter")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "default:1", rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "__sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/counter", nil)
	r.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	f.ctrl.ServeHTTP(rec, r)
	assert.Equal(t, "default:2", rec.Body.String())
}

func TestControllerRequestFlaggers(t *testing.T) {
	t.Parallel()

	var flagged bool
	device := internal.NewCommand("Device", func(_ context.Context, req *internal.Request, _ *internal.Response) error {
		flagged = req.HasFlag("mobile")
		return nil
	})
	f := newController(t, nil,
		userCommands(device),
		internal.WithRequestFlagger(internal.RequestFlaggerFunc(func(r *internal.Request) {
			r.SetFlag("mobile", strings.Contains(r.Server(internal.ServerUserAgent), "Mobile"))
		})),
	)

	r := httptest.NewRequest(http.MethodGet, "/device", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (iPhone) Mobile")
	f.ctrl.ServeHTTP(httptest.NewRecorder(), r)
	assert.True(t, flagged)
}

func TestControllerResolverOrder(t *testing.T) {
	t.Parallel()

	custom := internal.CommandResolverFunc(func(_ context.Context, req *internal.Request) (internal.Command, error) {
		if req.URL().Path == "about" {
			return namedCommand("Custom"), nil
		}
		return nil, nil
	})
	var seen string
	views := internal.NewViewRegistry().Add("About", internal.ViewFunc(
		func(_ context.Context, _ *internal.Output, resp *internal.Response) error {
			seen = resp.CommandName()
			return nil
		}))
	var later atomic.Int32
	counting := internal.CommandResolverFunc(func(context.Context, *internal.Request) (internal.Command, error) {
		later.Add(1)
		return nil, nil
	})
	f := newController(t, nil,
		userCommands(namedCommand("About")),
		internal.WithViews(views),
		internal.WithCommandResolver(custom),
		internal.WithCommandResolver(counting),
	)

	f.get("/about")
	assert.Equal(t, "Custom", seen)
	assert.Zero(t, later.Load(), "resolvers after a match must not be consulted")

	f.get("/contact")
	assert.Equal(t, int32(1), later.Load())
}

func TestControllerMappings(t *testing.T) {
	t.Parallel()

	mappings := templatesFS(map[string]string{
		"commands.xml": `<app><mapping><url>/news</url><command>Blog</command></mapping></app>`,
		"views.xml":    `<app><mapping><command>Blog</command><view>BlogList</view></mapping></app>`,
	})
	views := internal.NewViewRegistry().Add("BlogList", namedView("blog-list"))
	f := newController(t,
		map[string]string{
			internal.KeyCommandMapping:      "commands.xml",
			internal.KeyViewMapping:         "views.xml",
			internal.KeyUseDefaultResolvers: "false",
		},
		internal.WithMappings(mappings),
		userCommands(namedCommand("Blog")),
		internal.WithViews(views),
	)

	rec := f.get("/news/2024")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "blog-list", rec.Body.String())

	rec = f.get("/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "no path resolvers and no catch-all view")
}

func TestControllerBuiltins(t *testing.T) {
	t.Parallel()

	t.Run("action record", func(t *testing.T) {
		t.Parallel()
		f := newController(t, nil)

		form := url.Values{"identifier": {"signup-click"}, "path": {"/pricing"}}
		r := httptest.NewRequest(http.MethodPost, "/action-record", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		f.ctrl.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		assert.True(t, f.logs.Contains(logger.LevelInfo, "action recorded"))
		require.NoError(t, testutil.GatherAndCompare(f.reg, strings.NewReader(`
# HELP esprit_client_actions_total Client actions recorded, by identifier.
# TYPE esprit_client_actions_total counter
esprit_client_actions_total{identifier="signup-click"} 1
`), "esprit_client_actions_total"))
	})

	t.Run("action record without identifier", func(t *testing.T) {
		t.Parallel()
		f := newController(t, nil)

		r := httptest.NewRequest(http.MethodPost, "/action-record", nil)
		f.ctrl.ServeHTTP(httptest.NewRecorder(), r)
		assert.True(t, f.logs.Contains(logger.LevelError, "without an identifier"))
	})

	t.Run("js error record", func(t *testing.T) {
		t.Parallel()
		f := newController(t, nil)

		form := url.Values{"path": {"/cart"}, "eName": {"TypeError"}, "eMsg": {"x is undefined"}, "eStack": {" at f()"}}
		r := httptest.NewRequest(http.MethodPost, "/js-error-record", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.Header.Set("User-Agent", "UA/1.0")
		rec := httptest.NewRecorder()
		f.ctrl.ServeHTTP(rec, r)

		assert.JSONEq(t, `{"type":"ok"}`, rec.Body.String())
		assert.True(t, f.logs.Contains(logger.LevelError, "(/cart; UA/1.0) TypeError: x is undefined at f()"))
	})
}

func TestControllerTranslationTool(t *testing.T) {
	t.Parallel()

	store := i18n.NewMemoryStore()
	store.AddLanguage(i18n.Language{ID: 1, Identifier: "en"})
	store.AddLanguage(i18n.Language{ID: 2, Identifier: "de"})

	t.Run("hidden without debug", func(t *testing.T) {
		t.Parallel()
		f := newController(t, nil, internal.WithTranslationStore(store))
		rec := f.get("/TranslationTool")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("creates a string", func(t *testing.T) {
		t.Parallel()
		f := newController(t, map[string]string{internal.KeyDebug: "true"}, internal.WithTranslationStore(store))

		form := url.Values{
			"suggested_identifier": {"checkout_title"},
			"use_t_1":              {"on"},
			"t_1":                  {"Checkout"},
			"t_2":                  {"Kasse"},
		}
		r := httptest.NewRequest(http.MethodPost, "/TranslationTool?do=create-string", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		f.ctrl.ServeHTTP(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"languagesTranslated":1`)

		text, err := f.ctrl.Services().Translations.Translation(context.Background(), "checkout_title", "en")
		require.NoError(t, err)
		assert.Equal(t, "Checkout", text)
	})
}

func TestControllerClose(t *testing.T) {
	t.Parallel()

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		f := newController(t, nil)
		require.NoError(t, f.ctrl.Close())
		require.NoError(t, f.ctrl.Close())
		assert.Empty(t, f.ctrl.Logger().Recorders())
	})

	t.Run("closes the supplied logger", func(t *testing.T) {
		t.Parallel()
		log := logger.New(logger.WithRecorder(logger.NewMemoryRecorder(logger.LevelInfo)))
		ctrl, err := internal.NewController(config.FromMap(map[string]string{internal.KeyCacheBackend: internal.CacheMemory}),
			internal.WithLogger(log),
			internal.WithTemplates(templatesFS(controllerTemplates)),
		)
		require.NoError(t, err)

		require.NoError(t, ctrl.Close())
		assert.Empty(t, log.Recorders())
	})
}

func TestControllerEmailer(t *testing.T) {
	t.Parallel()

	store := i18n.NewMemoryStore()
	store.AddLanguage(i18n.Language{ID: 1, Identifier: "en"})
	require.NoError(t, store.SetTranslation(context.Background(), 1, "welcome", "Welcome"))

	var sent []*mailer.Email
	signup := internal.NewCommand("Signup", func(ctx context.Context, req *internal.Request, _ *internal.Response) error {
		return nil
	})
	views := internal.NewViewRegistry().Register("Signup", func(svc *internal.Services) (internal.View, error) {
		return internal.ViewFunc(func(ctx context.Context, out *internal.Output, resp *internal.Response) error {
			email := mailer.NewEmail()
			email.SetFrom(mailer.NewAddress("team@example.com"))
			email.AddRecipient(mailer.NewAddress(resp.Request().Post("email")))
			email.Subject = "Hello"
			if err := svc.Emailer(ctx, "en").Send(ctx, email, "welcome", map[string]any{"name": "Ada"}); err != nil {
				return err
			}
			_, err := out.Write([]byte("sent"))
			return err
		}), nil
	})
	f := newController(t, nil,
		userCommands(signup),
		internal.WithViews(views),
		internal.WithTranslationStore(store),
		internal.WithMailSender(mailer.SenderFunc(func(_ context.Context, e *mailer.Email) error {
			sent = append(sent, e)
			return nil
		})),
	)

	form := url.Values{"email": {"ada@example.com"}}
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.ctrl.ServeHTTP(rec, r)

	assert.Equal(t, "sent", rec.Body.String())
	require.Len(t, sent, 1)
	assert.Equal(t, "Welcome, Ada!", sent[0].Body)
	assert.Equal(t, "ada@example.com", sent[0].To[0].Email)
}
