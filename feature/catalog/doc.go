// Package catalog defines the normalized contract for remote game catalogs.
//
// Two independent providers implement the Client interface:
//   - bgg: the BoardGameGeek XML API (search, thing details, user collection)
//   - ludopedia: the Ludopedia JSON API (OAuth bearer token, paginated
//     collection walk with per-item detail enrichment)
//
// Both map their wire formats into catalog.Game, the single record shape the
// reconciliation engine and the collection feature consume. Clients return
// typed errors (ErrUnavailable, ErrUnauthorized) instead of swallowing
// failures, so "the user owns no games" and "the fetch failed" stay
// distinguishable.
//
// The cached subpackage decorates any Client with a Redis-backed search
// cache; mocks carries a testify mock of the Client interface.
package catalog
