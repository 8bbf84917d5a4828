package internal

import (
	"context"
	"encoding/xml"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// mappingDocument is the <app> root of a mapping file:
//
//	<app>
//	  <mapping>
//	    <url>/blog</url>
//	    <command>Blog</command>
//	    <requireExactMatch/>
//	  </mapping>
//	</app>
//
// View mappings use <command> and <view> instead.
type mappingDocument struct {
	XMLName  xml.Name     `xml:"app"`
	Mappings []xmlMapping `xml:"mapping"`
}

type xmlMapping struct {
	RequireExactMatch *string `xml:"requireExactMatch"`
	URL               string  `xml:"url"`
	Command           string  `xml:"command"`
	View              string  `xml:"view"`
}

func (m xmlMapping) exact() bool {
	if m.RequireExactMatch == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(*m.RequireExactMatch)) {
	case "false", "0", "no":
		return false
	}
	return true
}

// mappingFile parses a mapping file once, on first use. A failed parse is
// remembered and returned on every later call.
type mappingFile struct {
	fsys fs.FS
	err  error
	name string
	doc  mappingDocument
	once sync.Once
}

func (f *mappingFile) load() ([]xmlMapping, error) {
	f.once.Do(func() {
		data, err := fs.ReadFile(f.fsys, f.name)
		if err != nil {
			f.err = fmt.Errorf("%w: %s: %w", ErrResourceLoading, f.name, err)
			return
		}
		if err := xml.Unmarshal(data, &f.doc); err != nil {
			f.err = fmt.Errorf("%w: unable to parse %s: %w", ErrResourceLoading, f.name, err)
		}
	})
	return f.doc.Mappings, f.err
}

// CommandRule is one parsed command mapping.
type CommandRule struct {
	URL               string
	Command           string
	RequireExactMatch bool
}

// Matches reports whether the rule applies to u. Rule URLs are site
// relative; a leading "/" is ignored.
func (r CommandRule) Matches(u URL) bool {
	rule := strings.TrimPrefix(r.URL, "/")
	if rule == u.Path {
		return true
	}
	return !r.RequireExactMatch && fuzzyMatches(rule, u)
}

// fuzzyMatches compares rule segments with the leading segments of u,
// ignoring case.
func fuzzyMatches(rule string, u URL) bool {
	ruleSegs := strings.Split(strings.ToLower(rule), "/")
	segs := u.Segments()
	if len(ruleSegs) > len(segs) {
		return false
	}
	for i, s := range ruleSegs {
		if s != strings.ToLower(segs[i]) {
			return false
		}
	}
	return true
}

// XMLCommandResolver maps request paths to commands through a mapping
// file. The first matching rule in file order wins.
type XMLCommandResolver struct {
	file *mappingFile
	nameResolver[Command]
}

// NewXMLCommandResolver reads the mapping named name from fsys.
func NewXMLCommandResolver(fsys fs.FS, name string, sources ...CommandSource) *XMLCommandResolver {
	r := &XMLCommandResolver{file: &mappingFile{fsys: fsys, name: name}}
	for _, s := range sources {
		r.RegisterSource(s)
	}
	return r
}

// Rules returns the parsed rules, loading the file if needed.
func (r *XMLCommandResolver) Rules() ([]CommandRule, error) {
	mappings, err := r.file.load()
	if err != nil {
		return nil, err
	}
	rules := make([]CommandRule, 0, len(mappings))
	for _, m := range mappings {
		rules = append(rules, CommandRule{
			URL:               strings.TrimSpace(m.URL),
			Command:           strings.TrimSpace(m.Command),
			RequireExactMatch: m.exact(),
		})
	}
	return rules, nil
}

func (r *XMLCommandResolver) Resolve(_ context.Context, req *Request) (Command, error) {
	rules, err := r.Rules()
	if err != nil {
		return nil, err
	}
	for _, rule := range rules {
		if rule.Matches(req.URL()) {
			cmd, _, err := r.lookup(rule.Command)
			return cmd, err
		}
	}
	return nil, nil
}

// XMLViewResolver maps the command that produced a response to a view
// through a mapping file.
type XMLViewResolver struct {
	file *mappingFile
	log  *logger.Logger
	nameResolver[View]
}

// NewXMLViewResolver reads the mapping named name from fsys.
func NewXMLViewResolver(fsys fs.FS, name string, l *logger.Logger, sources ...ViewSource) *XMLViewResolver {
	if l == nil {
		l = logger.NewNope()
	}
	r := &XMLViewResolver{
		file: &mappingFile{fsys: fsys, name: name},
		log:  l.WithOrigin("XML_VIEW_RESOLVER"),
	}
	for _, s := range sources {
		r.RegisterSource(s)
	}
	return r
}

func (r *XMLViewResolver) Resolve(ctx context.Context, resp *Response) (View, error) {
	mappings, err := r.file.load()
	if err != nil {
		return nil, err
	}
	command := resp.CommandName()
	for _, m := range mappings {
		if strings.TrimSpace(m.Command) != command {
			continue
		}
		name := strings.TrimSpace(m.View)
		view, ok, err := r.lookup(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			r.log.ErrorContext(ctx, "mapped view does not exist",
				slog.String("command", command),
				slog.String("view", name),
			)
			return nil, nil
		}
		return view, nil
	}
	return nil, nil
}
