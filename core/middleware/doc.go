// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler namespaces.
//
// # Components
//
//   - CORS: the cross-origin Policy (Permissive or a fixed allow-list of local
//     development origins) selected once at startup from the debug flag. It is
//     always registered first.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
package middleware
