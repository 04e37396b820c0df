package types

import "time"

// Memo is a user-owned note. Labels is derived, not stored on the row: it is
// hydrated from the MemoLabels junction table ordered by label name and is
// never written back through Add or Update.
type Memo struct {
	ID        string // UUID v7, generated on creation.
	UserID    string // Owner; memo rows cascade when the owner is deleted.
	Title     string // Defaults to the empty string, never NULL.
	Content   string // Required.
	Labels    []Label
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
