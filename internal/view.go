package internal

import "context"

// View renders a response.
type View interface {
	Display(ctx context.Context, out *Output, resp *Response) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context, out *Output, resp *Response) error

func (f ViewFunc) Display(ctx context.Context, out *Output, resp *Response) error {
	return f(ctx, out, resp)
}

// ViewResolver maps a response to a view. A nil view without error means
// no match.
type ViewResolver interface {
	Resolve(ctx context.Context, resp *Response) (View, error)
}

// ViewResolverFunc adapts a function to ViewResolver.
type ViewResolverFunc func(ctx context.Context, resp *Response) (View, error)

func (f ViewResolverFunc) Resolve(ctx context.Context, resp *Response) (View, error) {
	return f(ctx, resp)
}

// ViewSource provides views by name.
type ViewSource = Source[View]

// ViewRegistry holds view factories by name.
type ViewRegistry = Registry[View]

// NewViewRegistry returns an empty view registry.
func NewViewRegistry() *ViewRegistry {
	return NewRegistry[View]()
}

// CatchallViewResolver answers every response with the same view.
type CatchallViewResolver struct {
	view View
}

// NewCatchallViewResolver returns a resolver that always yields view.
func NewCatchallViewResolver(view View) *CatchallViewResolver {
	return &CatchallViewResolver{view: view}
}

func (r *CatchallViewResolver) Resolve(context.Context, *Response) (View, error) {
	return r.view, nil
}
