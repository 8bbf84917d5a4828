// Package internal implements the esprit framework.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/esprit" instead, which re-exports the public API.
//
// # Request flow
//
// Controller.Run handles one request:
//
//   - start or resume the session; its cookie is written just before the
//     first byte of the response
//   - build the Request from the Environment, resolve the Site and run the
//     request flaggers
//   - resolve a Command through the command resolver chain, or use the
//     fallback command
//   - execute it; ErrPageNotFound reruns the fallback once with the
//     response marked not found, a RedirectError becomes a redirect
//   - resolve a View through the ViewManager and display it
//
// Any error or panic on the way is logged and, when nothing has been
// written yet, answered with the generic error page.
//
// # Names
//
// Path resolvers turn each path segment into a name: "shopping-cart"
// becomes "ShoppingCart" and the path "shop/shopping-cart" yields the
// candidates "Shop_ShoppingCart" and "Shop". Registries are consulted from
// the last registered to the first, so applications can shadow built-ins.
//
// # App
//
// App puts a chi router in front of the controller for middleware, static
// files, health and metrics endpoints and explicit routes. Run serves
// several apps on one listener, routed by host.
package internal
