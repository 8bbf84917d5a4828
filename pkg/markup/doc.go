// Package markup renders Markdown for templates and sanitizes HTML coming
// from translators or users.
//
//	html, err := markup.Markdown("**bold** and [a link](https://example.com)")
//
// Output of Markdown and Sanitize is safe to embed without escaping.
package markup
