package internal

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrymomot/esprit/pkg/i18n"
	"github.com/dmitrymomot/esprit/pkg/logger"
	"github.com/dmitrymomot/esprit/pkg/markup"
)

// TemplateExt is the extension of template files.
const TemplateExt = ".html"

// TemplateSet holds every template parsed from a directory tree. A
// template is named after its path without extension ("Default",
// "email/welcome"). The set is shared; per-render state lives in a
// TemplateParser.
type TemplateSet struct {
	root         *template.Template
	translations i18n.Source
	log          *logger.Logger
}

// TemplateOption configures a TemplateSet.
type TemplateOption func(*TemplateSet)

// WithTemplateTranslations backs the "t" template function.
func WithTemplateTranslations(src i18n.Source) TemplateOption {
	return func(s *TemplateSet) {
		s.translations = src
	}
}

// WithTemplateLogger sets the logger for translation failures.
func WithTemplateLogger(l *logger.Logger) TemplateOption {
	return func(s *TemplateSet) {
		if l != nil {
			s.log = l
		}
	}
}

// NewTemplateSet parses every *.html file of fsys. A nil fsys gives an
// empty set.
func NewTemplateSet(fsys fs.FS, opts ...TemplateOption) (*TemplateSet, error) {
	s := &TemplateSet{
		root: template.New("").Funcs(baseFuncs(context.Background(), nil, "")),
		log:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if fsys == nil {
		return s, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != TemplateExt {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(p, TemplateExt)
		if _, err := s.root.New(name).Parse(string(data)); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateConfiguration, err)
	}
	return s, nil
}

// Exists reports whether a template called name was parsed.
func (s *TemplateSet) Exists(name string) bool {
	return s.root.Lookup(name) != nil
}

// Parser returns a render context translating into language.
func (s *TemplateSet) Parser(ctx context.Context, language string) *TemplateParser {
	var tr *i18n.Translator
	if s.translations != nil {
		tr = i18n.NewTranslator(s.translations, language, s.log)
	}
	return &TemplateParser{
		set:        s,
		ctx:        ctx,
		translator: tr,
		language:   language,
		vars:       make(map[string]any),
	}
}

// baseFuncs are the template functions. "t" translates an identifier and
// fills placeholders from key/value pairs:
//
//	{{t "welcome_back" "name" .user}}
//
// "plural" picks "<identifier>.<category>" by the language's plural rule
// and sets {{count}}:
//
//	{{plural "cart_items" .count}}
//
// "number", "currency", "percent", "date", "time" and "datetime" follow
// the conventions of language. "markdown" renders sanitized Markdown.
func baseFuncs(ctx context.Context, tr *i18n.Translator, language string) template.FuncMap {
	format := i18n.FormatFor(language)
	return template.FuncMap{
		"t": func(identifier string, pairs ...any) string {
			if tr == nil {
				return identifier
			}
			if len(pairs) == 0 {
				return tr.Translate(ctx, identifier)
			}
			return tr.TranslateWith(ctx, identifier, placeholders(pairs))
		},
		"plural": func(identifier string, n any, pairs ...any) (string, error) {
			count, err := toFloat(n)
			if err != nil {
				return "", err
			}
			if tr == nil {
				return identifier, nil
			}
			return tr.TranslatePlural(ctx, identifier, int(count), placeholders(pairs)), nil
		},
		"number":   formatNumber(format.Number),
		"currency": formatNumber(format.Currency),
		"percent":  formatNumber(format.Percent),
		"date":     format.Date,
		"time":     format.Time,
		"datetime": format.DateTime,
		"markdown": func(src string) (template.HTML, error) {
			out, err := markup.Markdown(src)
			return template.HTML(out), err //nolint:gosec // sanitized by markup
		},
	}
}

func placeholders(pairs []any) i18n.M {
	params := make(i18n.M, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params[fmt.Sprint(pairs[i])] = pairs[i+1]
	}
	return params
}

func formatNumber(render func(float64) string) func(any) (string, error) {
	return func(v any) (string, error) {
		n, err := toFloat(v)
		if err != nil {
			return "", err
		}
		return render(n), nil
	}
}

// toFloat accepts the numeric types commands and sessions hand to
// templates. Session values come back from JSON as float64.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("template: %T is not a number", v)
}

// TemplateParser renders templates of a set with its own variables. It is
// meant for a single render flow and is not safe for concurrent use.
type TemplateParser struct {
	set        *TemplateSet
	ctx        context.Context
	translator *i18n.Translator
	language   string
	vars       map[string]any
}

// TemplateExists reports whether the set has a template called name.
func (p *TemplateParser) TemplateExists(name string) bool {
	return p.set.Exists(name)
}

// SetVariable makes value available to templates as .key.
func (p *TemplateParser) SetVariable(key string, value any) {
	p.vars[key] = value
}

// Clear removes every variable.
func (p *TemplateParser) Clear() {
	clear(p.vars)
}

// LoadResponse exposes the response values as variables, plus the
// response itself as .response and its not-found flag as .notFound.
func (p *TemplateParser) LoadResponse(resp *Response) {
	for k, v := range resp.All() {
		p.vars[k] = v
	}
	p.vars["response"] = resp
	p.vars["notFound"] = resp.NotFound()
}

// DisplayTemplate renders name to w.
func (p *TemplateParser) DisplayTemplate(w io.Writer, name string) error {
	if !p.set.Exists(name) {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	// The shared root is never executed, so it can always be cloned.
	t, err := p.set.root.Clone()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTemplateConfiguration, err)
	}
	t.Funcs(baseFuncs(p.ctx, p.translator, p.language))
	return t.ExecuteTemplate(w, name, p.vars)
}

// Evaluate renders name to a string.
func (p *TemplateParser) Evaluate(name string) (string, error) {
	var buf bytes.Buffer
	if err := p.DisplayTemplate(&buf, name); err != nil {
		return "", err
	}
	return buf.String(), nil
}
