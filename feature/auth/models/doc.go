// Package models defines the persisted account types.
package models
