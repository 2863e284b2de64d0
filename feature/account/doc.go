// Package account provides the /api/account namespace: the signed-in user of
// this device, kept in memory.
//
// # HTTP Endpoints
//
//   - GET /api/account : The current account, or 204 when signed out.
//   - POST /api/account/sign-in : Sign in with {email}.
//   - POST /api/account/sign-out : Sign out; 401 when nobody is signed in.
package account
