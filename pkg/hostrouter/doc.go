// Package hostrouter matches request hosts against exact and wildcard
// patterns.
//
//   - Exact: "api.example.com" matches only that host
//   - Wildcard: "*.example.com" matches any direct subdomain
//
// Exact matches take priority over wildcard matches. Matching is
// case-insensitive and ports are stripped first.
//
// Table holds arbitrary values (the framework keeps sites in one); Router
// is a Table of http.Handlers:
//
//	router := hostrouter.New(hostrouter.Routes{
//	    "api.example.com": apiHandler,
//	    "*.example.com":   tenantHandler,
//	}, defaultHandler)
package hostrouter
