// This file implements the Memos table accessor and the MemoLabels junction
// management. A memo's label list is derived: hydrated through a join on
// every read, never written through Add or Update.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

const memoColumns = `id, user_id, title, content, is_system, created_at, updated_at`

// MemosTable maps between types.Memo and rows of the Memos table.
type MemosTable struct {
	store *Store
}

// Get retrieves a memo by ID along with its ordered label list.
func (t *MemosTable) Get(id string) (*types.Memo, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	row := t.store.db.QueryRow(
		"SELECT "+memoColumns+" FROM Memos WHERE id = ?", id,
	)
	memo, err := hydrateMemo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting memo %s: %w", id, err)
	}
	if memo.Labels, err = t.getLabels(memo.ID); err != nil {
		return nil, err
	}
	return memo, nil
}

// GetAll returns all memos ordered by most recently updated first.
func (t *MemosTable) GetAll() ([]*types.Memo, error) {
	return t.query("SELECT " + memoColumns + " FROM Memos ORDER BY updated_at DESC")
}

// GetByUser returns the user's memos ordered by most recently updated first.
func (t *MemosTable) GetByUser(userID string) ([]*types.Memo, error) {
	return t.query(
		"SELECT "+memoColumns+" FROM Memos WHERE user_id = ? ORDER BY updated_at DESC",
		userID,
	)
}

// Add inserts a new memo row, generating a missing ID and stamping zero
// timestamps. The Labels field is ignored; associations are managed through
// AddLabel and RemoveLabel.
func (t *MemosTable) Add(memo *types.Memo) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	stampNew(&memo.ID, &memo.CreatedAt, &memo.UpdatedAt)

	_, err := t.store.db.Exec(
		`INSERT INTO Memos (`+memoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		memo.ID, memo.UserID, memo.Title, memo.Content, memo.IsSystem,
		encodeTime(memo.CreatedAt), encodeTime(memo.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("adding memo %s: %w", memo.ID, err)
	}
	return nil
}

// Update rewrites a memo row. Matching zero rows writes nothing.
func (t *MemosTable) Update(memo *types.Memo) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec(
		`UPDATE Memos SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		memo.Title, memo.Content, encodeTime(memo.UpdatedAt), memo.ID,
	)
	if err != nil {
		return fmt.Errorf("updating memo %s: %w", memo.ID, err)
	}
	return nil
}

// Delete removes a memo row; its MemoLabels rows go with it through the
// cascade rule.
func (t *MemosTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec("DELETE FROM Memos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting memo %s: %w", id, err)
	}
	return nil
}

// AddLabel associates a label with a memo. Idempotent: the insert ignores a
// duplicate-key conflict, so associating the same pair twice leaves exactly
// one junction row and no error.
func (t *MemosTable) AddLabel(memoID, labelID string) error {
	if memoID == "" || labelID == "" {
		return types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec(
		"INSERT OR IGNORE INTO MemoLabels (memo_id, label_id) VALUES (?, ?)",
		memoID, labelID,
	)
	if err != nil {
		return fmt.Errorf("associating label %s with memo %s: %w", labelID, memoID, err)
	}
	return nil
}

// RemoveLabel dissociates a label from a memo by composite key. Removing an
// association that does not exist is a no-op, not an error.
func (t *MemosTable) RemoveLabel(memoID, labelID string) error {
	if memoID == "" || labelID == "" {
		return types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec(
		"DELETE FROM MemoLabels WHERE memo_id = ? AND label_id = ?",
		memoID, labelID,
	)
	if err != nil {
		return fmt.Errorf("dissociating label %s from memo %s: %w", labelID, memoID, err)
	}
	return nil
}

// getLabels hydrates a memo's label list through the junction join, ordered
// by label name. Caller holds the store read lock.
func (t *MemosTable) getLabels(memoID string) ([]types.Label, error) {
	rows, err := t.store.db.Query(
		`SELECT l.id, l.user_id, l.name, l.description, l.color,
		        l.is_system, l.created_at, l.updated_at
		 FROM Labels l
		 INNER JOIN MemoLabels ml ON ml.label_id = l.id
		 WHERE ml.memo_id = ?
		 ORDER BY l.name COLLATE NOCASE ASC`,
		memoID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying labels for memo %s: %w", memoID, err)
	}
	defer rows.Close()

	labels := []types.Label{}
	for rows.Next() {
		label, err := hydrateLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating memo label: %w", err)
		}
		labels = append(labels, *label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memo labels: %w", err)
	}
	return labels, nil
}

// query runs a multi-row memo query, hydrating each memo and its labels.
func (t *MemosTable) query(q string, args ...any) ([]*types.Memo, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	rows, err := t.store.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing memos: %w", err)
	}
	defer rows.Close()

	memos := []*types.Memo{}
	for rows.Next() {
		memo, err := hydrateMemo(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating memo: %w", err)
		}
		memos = append(memos, memo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memos: %w", err)
	}

	for _, memo := range memos {
		if memo.Labels, err = t.getLabels(memo.ID); err != nil {
			return nil, err
		}
	}
	return memos, nil
}

// hydrateMemo converts a Memos row into a *types.Memo. Labels are hydrated
// separately.
func hydrateMemo(row rowScanner) (*types.Memo, error) {
	var m types.Memo
	var id, userID, createdAt, updatedAt string

	err := row.Scan(&id, &userID, &m.Title, &m.Content, &m.IsSystem, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if m.ID, err = parseID(id); err != nil {
		return nil, err
	}
	if m.UserID, err = parseID(userID); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
