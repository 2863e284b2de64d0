// Package metrics provides Prometheus instrumentation for the web server.
//
// A Registry is created per server instance. It counts requests per mount
// (api namespace, static, fallback), handler failures per error kind, SPA
// fallbacks and bundle materialization cache hits/misses.
package metrics
