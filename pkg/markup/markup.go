package markup

import (
	"bytes"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md         goldmark.Markdown
	safePolicy *bluemonday.Policy
	strict     *bluemonday.Policy
	initOnce   sync.Once
)

func setup() {
	initOnce.Do(func() {
		md = goldmark.New(goldmark.WithExtensions(extension.GFM))

		strict = bluemonday.StrictPolicy()

		// Formatting a translator or editor may reasonably write.
		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// Markdown renders src to HTML and sanitizes the result.
func Markdown(src string) (string, error) {
	setup()
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return safePolicy.Sanitize(buf.String()), nil
}

// Sanitize keeps basic formatting tags and strips scripts, event handlers
// and javascript: URLs.
func Sanitize(s string) string {
	setup()
	return safePolicy.Sanitize(s)
}

// StripTags removes all HTML.
func StripTags(s string) string {
	setup()
	return strict.Sanitize(s)
}
