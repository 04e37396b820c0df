package types

import "time"

// DefaultLabelColor is used when a label is created without a color.
const DefaultLabelColor = "#808080"

// Label is a user-owned tag that memos reference through the MemoLabels
// junction table. Per-owner name uniqueness is soft: only the GetByName
// lookup exists, no storage constraint, so callers that need the guarantee
// must check before creating.
type Label struct {
	ID          string // UUID v7, generated on creation.
	UserID      string // Owner; label rows cascade when the owner is deleted.
	Name        string
	Description string
	Color       string // Hex color, defaults to DefaultLabelColor.
	IsSystem    bool   // Set on seeded default labels.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
