// Package profiles provides the /api/client-profiles namespace, an in-memory
// store of client profiles (a name plus the access key used to connect).
//
// # HTTP Endpoints
//
//   - GET /api/client-profiles : List profiles in creation order.
//   - GET /api/client-profiles/:id : Get one profile.
//   - POST /api/client-profiles : Create a profile from {name, accessKey}.
//   - PATCH /api/client-profiles/:id : Rename a profile.
//   - DELETE /api/client-profiles/:id : Delete a profile (204).
//
// Access keys are unique; creating a second profile with the same key is a
// Conflict.
package profiles
