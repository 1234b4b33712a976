// Package api provides the HTTP handlers, request/response models and
// error mapping for the wallet endpoints.
package api
