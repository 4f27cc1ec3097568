// Package store provides the persistence primitive shared by all desktop
// state stores: whole-state JSON snapshots written under a stable key in a
// key/value backend.
//
// Loading never fails from the caller's point of view. A missing or
// malformed snapshot yields the caller's default value, tagged with the
// reason so the fallback is observable in tests and debug logs. Saving is
// best-effort: a failed write is logged (debug only) and swallowed, leaving
// the in-memory state authoritative.
package store

import (
	"encoding/json"
	"log"
)

// Snapshot keys, one per logical store. No two stores share a key.
const (
	KeyClipboard     = "zdesk:clipboard"
	KeyTags          = "zdesk:tags"
	KeyFileTags      = "zdesk:file-tags"
	KeySmartFolders  = "zdesk:smart-folders"
	KeyNotifications = "zdesk:notifications"
	KeyDoNotDisturb  = "zdesk:dnd"
	KeyRecents       = "zdesk:recents"
	KeyRecentApps    = "zdesk:recent-apps"
	KeySpaces        = "zdesk:spaces"
	KeyWidgets       = "zdesk:widgets"
)

// Debug enables logging of swallowed persistence failures.
var Debug bool

// Backend is the key/value storage a store persists into.
// db.Snapshots implements it over SQLite; Memory implements it for tests.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Keys() ([]string, error)
}

// LoadStatus reports how a Load resolved.
type LoadStatus string

const (
	// Hydrated means the snapshot was present and deserialized.
	Hydrated LoadStatus = "hydrated"
	// UsedDefault means the caller's default was used; see Reason.
	UsedDefault LoadStatus = "used_default"
)

// LoadResult is the tagged outcome of a Load. Stores discard the reason by
// contract, but it is kept visible for debugging.
type LoadResult struct {
	Status LoadStatus
	Reason string
}

// Load reads and deserializes the snapshot under key into v. On any failure
// (absent key, backend error, malformed JSON) v is left pointing at def and
// the result says why. It never returns an error.
func Load[T any](b Backend, key string, def T) (T, LoadResult) {
	raw, ok, err := b.Get(key)
	if err != nil {
		if Debug {
			log.Printf("store: load %s: %v", key, err)
		}
		return def, LoadResult{Status: UsedDefault, Reason: "read error: " + err.Error()}
	}
	if !ok {
		return def, LoadResult{Status: UsedDefault, Reason: "missing key"}
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		if Debug {
			log.Printf("store: decode %s: %v", key, err)
		}
		return def, LoadResult{Status: UsedDefault, Reason: "malformed snapshot: " + err.Error()}
	}
	return v, LoadResult{Status: Hydrated}
}

// Save serializes v and writes it under key. Failures are swallowed; the
// in-memory state remains correct even when the write is lost.
func Save(b Backend, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		if Debug {
			log.Printf("store: encode %s: %v", key, err)
		}
		return
	}
	if err := b.Put(key, string(data)); err != nil {
		if Debug {
			log.Printf("store: save %s: %v", key, err)
		}
	}
}
