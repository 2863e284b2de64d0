// Package app provides the /api/app namespace: server status and the ad
// provider catalogue the UI reads on startup.
//
// # HTTP Endpoints
//
//   - GET /api/app/status : Current state, listen URL, bundle hash and version.
//   - GET /api/app/ad-providers : Ad providers, optionally filtered with ?country=XX
//     and ?vpn=true (providers that can show while connected).
package app
