// Package models defines the persisted game record and its response
// projections.
package models
