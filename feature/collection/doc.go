// Package collection implements the per-user board game collection: CRUD
// over owned games, sorted reads, catalog search and the import and sync
// operations against the remote catalogs.
package collection
