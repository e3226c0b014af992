// Package config aggregates the partial configurations of every subsystem.
//
// Each package owns its Config struct; this package composes them, binds
// defaults from struct tags and overrides them from the environment
// (SERVER_PORT -> server.port and so on), with optional .env support for
// local development.
package config
