// Package middleware groups the HTTP middleware used by the application:
// rayid (request correlation ids) and auth (bearer-token guard).
package middleware
