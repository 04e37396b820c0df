// This file implements the Labels table accessor. Per-owner name uniqueness
// is deliberately soft: no constraint backs it, only the GetByName lookup,
// so two same-named labels can coexist for one owner if a caller skips the
// check-then-create path.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

const labelColumns = `id, user_id, name, description, color, is_system, created_at, updated_at`

// LabelsTable maps between types.Label and rows of the Labels table.
type LabelsTable struct {
	store *Store
}

// Get retrieves a label by ID.
func (t *LabelsTable) Get(id string) (*types.Label, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	row := t.store.db.QueryRow(
		"SELECT "+labelColumns+" FROM Labels WHERE id = ?", id,
	)
	label, err := hydrateLabel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting label %s: %w", id, err)
	}
	return label, nil
}

// GetAll returns all labels ordered by name ascending, case-insensitively.
func (t *LabelsTable) GetAll() ([]*types.Label, error) {
	return t.query("SELECT " + labelColumns + " FROM Labels ORDER BY name COLLATE NOCASE ASC")
}

// GetByUser returns the user's labels ordered by name ascending,
// case-insensitively.
func (t *LabelsTable) GetByUser(userID string) ([]*types.Label, error) {
	return t.query(
		"SELECT "+labelColumns+" FROM Labels WHERE user_id = ? ORDER BY name COLLATE NOCASE ASC",
		userID,
	)
}

// GetByName looks up a user's label by name, compared case-insensitively.
// Returns ErrNotFound when the user owns no such label. This is the soft
// uniqueness helper: callers that need per-owner unique names check here
// before creating.
func (t *LabelsTable) GetByName(userID, name string) (*types.Label, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	row := t.store.db.QueryRow(
		"SELECT "+labelColumns+" FROM Labels WHERE user_id = ? AND name = ? COLLATE NOCASE",
		userID, name,
	)
	label, err := hydrateLabel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting label %q for user %s: %w", name, userID, err)
	}
	return label, nil
}

// Add inserts a new label row, generating a missing ID and stamping zero
// timestamps. An empty color falls back to the default gray.
func (t *LabelsTable) Add(label *types.Label) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	stampNew(&label.ID, &label.CreatedAt, &label.UpdatedAt)
	if label.Color == "" {
		label.Color = types.DefaultLabelColor
	}

	_, err := t.store.db.Exec(
		`INSERT INTO Labels (`+labelColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		label.ID, label.UserID, label.Name, nullIfEmpty(label.Description),
		label.Color, label.IsSystem,
		encodeTime(label.CreatedAt), encodeTime(label.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("adding label %q: %w", label.Name, err)
	}
	return nil
}

// Update rewrites a label row. Matching zero rows writes nothing.
func (t *LabelsTable) Update(label *types.Label) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec(
		`UPDATE Labels SET name = ?, description = ?, color = ?, updated_at = ?
		 WHERE id = ?`,
		label.Name, nullIfEmpty(label.Description), label.Color,
		encodeTime(label.UpdatedAt), label.ID,
	)
	if err != nil {
		return fmt.Errorf("updating label %s: %w", label.ID, err)
	}
	return nil
}

// Delete removes a label row. Association rows in MemoLabels referencing it
// are removed by the cascade rule, not by explicit code; no dangling
// association survives.
func (t *LabelsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec("DELETE FROM Labels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting label %s: %w", id, err)
	}
	return nil
}

// CountByUser returns the number of labels the user owns.
func (t *LabelsTable) CountByUser(userID string) (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return 0, types.ErrStoreClosed
	}

	var n int
	err := t.store.db.QueryRow(
		"SELECT COUNT(*) FROM Labels WHERE user_id = ?", userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting labels for user %s: %w", userID, err)
	}
	return n, nil
}

// query runs a multi-row label query and hydrates the results.
func (t *LabelsTable) query(q string, args ...any) ([]*types.Label, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	rows, err := t.store.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	defer rows.Close()

	labels := []*types.Label{}
	for rows.Next() {
		label, err := hydrateLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating label: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating labels: %w", err)
	}
	return labels, nil
}

// hydrateLabel converts a Labels row into a *types.Label.
func hydrateLabel(row rowScanner) (*types.Label, error) {
	var l types.Label
	var id, userID, createdAt, updatedAt string
	var description sql.NullString

	err := row.Scan(
		&id, &userID, &l.Name, &description, &l.Color,
		&l.IsSystem, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if l.ID, err = parseID(id); err != nil {
		return nil, err
	}
	if l.UserID, err = parseID(userID); err != nil {
		return nil, err
	}
	l.Description = textOrEmpty(description)
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
