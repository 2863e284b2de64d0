// Package loader mounts the API handler namespaces.
//
// The route table is fixed: /api/app, /api/client-profiles, /api/account and
// /api/billing, in that order. Each namespace is served by a Feature, an opaque
// handler set that registers codec.HandlerFunc routes through a Router. Every
// handler is wrapped by core/codec, so features never write raw responses.
//
// # Precedence
//
// Namespaces are mounted before the static content. LoadAll terminates every
// namespace with a catch-all answering RouteNotFound as structured JSON, so a
// file in the UI bundle can never shadow an API path.
//
// # Usage
//
//	mgr := loader.NewManager(cd, loader.Features{App: appHandler})
//	if err := mgr.LoadAll(app); err != nil {
//	    return err
//	}
package loader
