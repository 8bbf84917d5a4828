package internal

import "context"

// Command computes the values a page needs. It mutates resp in place and
// may return ErrPageNotFound or a *RedirectError to change the flow.
type Command interface {
	Name() string
	Execute(ctx context.Context, req *Request, resp *Response) error
}

type funcCommand struct {
	fn   func(ctx context.Context, req *Request, resp *Response) error
	name string
}

// NewCommand wraps fn as a Command called name.
//
// Example:
//
//	esprit.NewCommand("About", func(ctx context.Context, req *esprit.Request, resp *esprit.Response) error {
//	    resp.Set("team", team)
//	    return nil
//	})
func NewCommand(name string, fn func(ctx context.Context, req *Request, resp *Response) error) Command {
	return &funcCommand{name: name, fn: fn}
}

func (c *funcCommand) Name() string { return c.name }

func (c *funcCommand) Execute(ctx context.Context, req *Request, resp *Response) error {
	return c.fn(ctx, req, resp)
}

// CommandResolver maps a request to a command. A nil command without
// error means no match.
type CommandResolver interface {
	Resolve(ctx context.Context, req *Request) (Command, error)
}

// CommandResolverFunc adapts a function to CommandResolver.
type CommandResolverFunc func(ctx context.Context, req *Request) (Command, error)

func (f CommandResolverFunc) Resolve(ctx context.Context, req *Request) (Command, error) {
	return f(ctx, req)
}

// CommandSource provides commands by name.
type CommandSource = Source[Command]

// CommandRegistry holds command factories by name.
type CommandRegistry = Registry[Command]

// NewCommandRegistry returns an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return NewRegistry[Command]()
}

// resolveCommands runs the chain and returns the first match.
func resolveCommands(ctx context.Context, chain []CommandResolver, req *Request) (Command, int, error) {
	for i, r := range chain {
		cmd, err := r.Resolve(ctx, req)
		if err != nil {
			return nil, i, err
		}
		if cmd != nil {
			return cmd, i, nil
		}
	}
	return nil, -1, nil
}
