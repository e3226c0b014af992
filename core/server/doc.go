// Package server holds configuration for the HTTP server.
package server
