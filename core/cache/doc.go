// Package cache provides an optional Redis-backed JSON cache.
//
// It is used to memoize remote catalog search results so repeated queries do
// not hit the third-party APIs. The cache degrades to a no-op when Redis is
// not configured; it must never be load-bearing for correctness.
package cache
