// Package model describes the metadata objects tracked by depot:
// repositories, immutable repository versions, content units and the
// ledger rows binding content to version intervals.
//
// Model types are pure data holders: they marshal to JSON for storage
// and to YAML for display, and know how to build their own store keys.
package model
