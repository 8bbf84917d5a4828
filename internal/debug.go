package internal

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/esprit/pkg/i18n"
	"github.com/dmitrymomot/esprit/pkg/logger"
)

// TranslationToolName is the path and command name of the translation
// tool served in debug mode.
const TranslationToolName = "TranslationTool"

// DebugCommandResolver serves developer tools. The controller puts it in
// front of the chain when debug is enabled.
type DebugCommandResolver struct {
	tool *i18n.TranslationTool
	log  *logger.Logger
}

// NewDebugCommandResolver serves the translation tool at /TranslationTool.
func NewDebugCommandResolver(tool *i18n.TranslationTool, l *logger.Logger) *DebugCommandResolver {
	if l == nil {
		l = logger.NewNope()
	}
	return &DebugCommandResolver{tool: tool, log: l.WithOrigin("DEBUG")}
}

func (r *DebugCommandResolver) Resolve(_ context.Context, req *Request) (Command, error) {
	if r.tool == nil || req.URL().Path != TranslationToolName {
		return nil, nil
	}
	return &translationToolCommand{tool: r.tool, log: r.log}, nil
}

// DebugViewResolver shows the responses of debug commands.
type DebugViewResolver struct {
	templates *TemplateSet
}

// NewDebugViewResolver renders the "TranslationTool" template when it
// exists and JSON otherwise.
func NewDebugViewResolver(templates *TemplateSet) *DebugViewResolver {
	return &DebugViewResolver{templates: templates}
}

func (r *DebugViewResolver) Resolve(_ context.Context, resp *Response) (View, error) {
	if resp.CommandName() != TranslationToolName {
		return nil, nil
	}
	if r.templates != nil && r.templates.Exists(TranslationToolName) {
		return &templateView{templates: r.templates, name: TranslationToolName}, nil
	}
	return ViewFunc(func(_ context.Context, out *Output, resp *Response) error {
		return writeJSON(out, resp.All())
	}), nil
}

// translationToolCommand lists languages, or with ?do=create-string
// creates a string from the posted form:
//
//	suggested_identifier  base of the new identifier
//	use_t_<languageid>    non-empty to translate into that language
//	t_<languageid>        the translation
type translationToolCommand struct {
	tool *i18n.TranslationTool
	log  *logger.Logger
}

func (c *translationToolCommand) Name() string { return TranslationToolName }

func (c *translationToolCommand) Execute(ctx context.Context, req *Request, resp *Response) error {
	languages, err := c.tool.Languages(ctx)
	if err != nil {
		return fmt.Errorf("translation tool: %w", err)
	}

	if req.Get("do") != "create-string" {
		resp.Set("languages", languages)
		return nil
	}

	identifier, err := c.tool.NewIdentifier(ctx, req.Post("suggested_identifier"))
	if err != nil {
		return fmt.Errorf("translation tool: %w", err)
	}

	translated := 0
	for _, l := range languages {
		id := strconv.FormatInt(l.ID, 10)
		if req.Post("use_t_"+id) == "" || !req.PostExists("t_"+id) {
			continue
		}
		if err := c.tool.SetTranslation(ctx, l, identifier, req.Post("t_"+id)); err != nil {
			return fmt.Errorf("translation tool: %w", err)
		}
		translated++
	}

	c.log.InfoContext(ctx, "translation string created",
		slog.String("identifier", identifier),
		slog.Int("languages", translated),
	)
	resp.Set("newTranslationIdentifier", identifier)
	resp.Set("languagesTranslated", translated)
	return nil
}
