// Package reconcile computes and applies the three-way partition between a
// user's local collection and a remote catalog snapshot: remote records the
// user lacks are added, records both sides know are refreshed, and local
// records the remote no longer lists are removed. Applies are transactional
// and serialized per owner.
package reconcile
