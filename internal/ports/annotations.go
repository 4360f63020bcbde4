package ports

import "context"

// AnnotationStore persists free-text notes keyed by trade ID. The analytics
// engine never owns this map: it only reads through an optional lookup when
// formatting export rows, and the caller performs all writes.
type AnnotationStore interface {
	// Get returns the note for a trade ID. Missing notes return ("", false, nil).
	Get(ctx context.Context, tradeID string) (string, bool, error)
	// Set stores or replaces the note for a trade ID.
	Set(ctx context.Context, tradeID, note string) error
	// Delete removes the note for a trade ID. Deleting a missing note is not an error.
	Delete(ctx context.Context, tradeID string) error
	// All returns every stored note keyed by trade ID.
	All(ctx context.Context) (map[string]string, error)
}

// NoteLookup is the read-only view of an annotation overlay handed to the
// export and snapshot layers. A nil NoteLookup means no overrides.
type NoteLookup func(tradeID string) (string, bool)
