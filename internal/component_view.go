package internal

import (
	"context"

	"github.com/a-h/templ"
)

// ComponentView renders a templ component built from the response.
type ComponentView struct {
	build  func(resp *Response) templ.Component
	status Status
}

// NewComponentView returns a view rendering build(resp) with status 200.
func NewComponentView(build func(resp *Response) templ.Component) *ComponentView {
	return &ComponentView{build: build, status: StatusOK}
}

// WithStatus returns a copy of the view that sends s.
func (v *ComponentView) WithStatus(s Status) *ComponentView {
	c := *v
	c.status = s
	return &c
}

func (v *ComponentView) Display(ctx context.Context, out *Output, resp *Response) error {
	status := v.status
	if resp.NotFound() && status == StatusOK {
		status = StatusFileNotFound
	}
	out.SetStatus(status)
	out.SetHeader("Content-Type", "text/html; charset=utf-8")
	return v.build(resp).Render(ctx, out)
}
