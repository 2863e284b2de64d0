// Package billing provides the /api/billing namespace. This build has no
// store integration: the product list is empty and purchases are rejected
// with NotSupported.
package billing
