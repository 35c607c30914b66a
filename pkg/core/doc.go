// Package core implements the content-versioning operations of depot:
// repositories, immutable content units, copy-on-write versions backed by
// an interval ledger, squash-on-delete, retention enforcement and orphan
// content purge.
//
// All operations are package-level functions taking the target domain and
// a store.Store, with variadic functional options.
package core
