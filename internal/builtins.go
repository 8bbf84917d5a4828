package internal

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// Names of the built-in commands and views.
const (
	DefaultFallbackName = "DefaultFallback"
	ActionRecordName    = "ActionRecord"
	JsErrorRecordName   = "JsErrorRecord"

	// DefaultTemplate is rendered by DefaultView.
	DefaultTemplate = "Default"

	// NotFoundKey is set on responses produced by DefaultFallback.
	NotFoundKey = "IS_404"
)

// CoreCommands returns the built-in commands. The controller always
// consults them after every user source.
func CoreCommands() *CommandRegistry {
	return NewCommandRegistry().
		Add(IndexName, NewCommand(IndexName, func(context.Context, *Request, *Response) error {
			return nil
		})).
		Add(DefaultFallbackName, NewCommand(DefaultFallbackName, func(_ context.Context, _ *Request, resp *Response) error {
			resp.Set(NotFoundKey, true)
			return nil
		})).
		Register(ActionRecordName, func(svc *Services) (Command, error) {
			return &actionRecordCommand{log: svc.Logger.WithOrigin("ACTIONS"), metrics: svc.Metrics}, nil
		}).
		Register(JsErrorRecordName, func(svc *Services) (Command, error) {
			return &jsErrorRecordCommand{log: svc.Logger.WithOrigin("JS")}, nil
		})
}

// CoreViews returns the built-in views.
func CoreViews() *ViewRegistry {
	return NewViewRegistry().
		Register(IndexName, func(svc *Services) (View, error) {
			return &templateView{templates: svc.Templates, name: IndexName, fallback: DefaultTemplate}, nil
		}).
		Add(ActionRecordName, ViewFunc(func(_ context.Context, out *Output, _ *Response) error {
			return writeJSON(out, map[string]string{"status": "ok"})
		})).
		Add(JsErrorRecordName, ViewFunc(func(_ context.Context, out *Output, resp *Response) error {
			if resp.Exists("errorMsg") {
				return writeJSON(out, map[string]any{"type": "error", "msg": resp.Get("errorMsg")})
			}
			return writeJSON(out, map[string]string{"type": "ok"})
		}))
}

type actionRecordCommand struct {
	log     *logger.Logger
	metrics *Metrics
}

func (c *actionRecordCommand) Name() string { return ActionRecordName }

func (c *actionRecordCommand) Execute(ctx context.Context, req *Request, _ *Response) error {
	if !req.PostExists("identifier") {
		c.log.ErrorContext(ctx, "received an action record request without an identifier")
		return nil
	}
	identifier := req.Post("identifier")
	c.log.InfoContext(ctx, "action recorded",
		slog.String("identifier", identifier),
		slog.String("path", req.Post("path")),
	)
	c.metrics.RecordAction(identifier)
	return nil
}

type jsErrorRecordCommand struct {
	log *logger.Logger
}

func (c *jsErrorRecordCommand) Name() string { return JsErrorRecordName }

func (c *jsErrorRecordCommand) Execute(ctx context.Context, req *Request, _ *Response) error {
	c.log.ErrorContext(ctx, "("+req.Post("path")+"; "+req.Server(ServerUserAgent)+") "+
		req.Post("eName")+": "+req.Post("eMsg")+req.Post("eStack"))
	return nil
}

// NewDefaultView renders the "Default" template with the response loaded.
func NewDefaultView(templates *TemplateSet) View {
	return &templateView{templates: templates, name: DefaultTemplate}
}

// templateView renders name, or fallback when name does not exist.
// Not-found responses and those marked IS_404 are sent with 404.
type templateView struct {
	templates *TemplateSet
	name      string
	fallback  string
}

func (v *templateView) Display(ctx context.Context, out *Output, resp *Response) error {
	p := v.templates.Parser(ctx, resp.Request().Language())
	p.LoadResponse(resp)

	name := v.name
	if !p.TemplateExists(name) && v.fallback != "" {
		name = v.fallback
	}
	if resp.NotFound() || resp.Get(NotFoundKey) == true {
		out.SetStatus(StatusFileNotFound)
	}
	out.SetHeader("Content-Type", "text/html; charset=utf-8")
	return p.DisplayTemplate(out, name)
}

// FallbackView answers with a bare 500 page. The view manager uses it
// when no resolver finds a view.
type FallbackView struct{}

func (FallbackView) Display(_ context.Context, out *Output, _ *Response) error {
	writeErrorPage(out, ErrInternal())
	return nil
}

func writeJSON(out *Output, v any) error {
	out.SetHeader("Content-Type", "application/json")
	return json.NewEncoder(out).Encode(v)
}
