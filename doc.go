// Package esprit is a web framework that picks the code for a request from
// its URL path.
//
// Every request that no explicit route claims goes to a [Controller]. The
// controller finds a [Command] named after the longest matching path
// prefix, runs it, then finds a [View] the same way and lets it write the
// response. "/shop/cart/items" tries the commands "Shop_Cart_Items",
// "Shop_Cart" and "Shop", in that order; "/" runs "Index".
//
// # Quick Start
//
//	cfg, err := config.Load("config.yaml", config.WithDotenv(), config.WithEnv("ESPRIT"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	commands := esprit.NewCommandRegistry().
//	    Add("About", esprit.NewCommand("About", func(ctx context.Context, req *esprit.Request, resp *esprit.Response) error {
//	        resp.Set("team", team)
//	        return nil
//	    }))
//
//	ctrl, err := esprit.NewController(cfg, esprit.WithCommands(commands))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := esprit.New(
//	    esprit.WithController(ctrl),
//	    esprit.WithHealthChecks(),
//	)
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// Without a view called "About", the catch-all view renders the "Default"
// template with the values the command set.
//
// # Commands
//
// A command reads the [Request] and fills the [Response]. It may return
// [ErrPageNotFound] to be replaced by the fallback command, or a
// [RedirectError] from [Redirect] or [PermanentRedirect]. Any other error
// is logged and answered with the generic error page.
//
// Registries hold factories, so commands and views can take the shared
// [Services] when they are instantiated:
//
//	commands.Register("Article", func(svc *esprit.Services) (esprit.Command, error) {
//	    return &articleCommand{cache: svc.Cache.AccessNamespace("articles")}, nil
//	})
//
// # Resolution order
//
// Commands are resolved by the debug tools (with debug on), resolvers
// added with [WithCommandResolver], the XML mapping file named by
// command_mapping, then the path. Views follow the same order and end with
// the catch-all "Default" template. The registries passed last win over
// earlier ones and over the built-ins.
//
// # Explicit routes
//
// Handlers registered with [WithHandlers] declare chi routes matched before
// the controller. Use them for JSON APIs, webhooks and anything that does
// not fit the path convention.
//
// # Shutdown
//
// [App.Run] handles SIGINT and SIGTERM, drains the server, then flushes
// and closes the controller. Extra cleanup goes in [ShutdownHook].
package esprit
