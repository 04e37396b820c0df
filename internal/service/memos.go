package service

import (
	"time"

	"github.com/mesh-intelligence/satchel/internal/sqlite"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// MemoService is a thin wrapper over the Memos table: timestamp stamping on
// every mutation plus label association management.
type MemoService struct {
	store *sqlite.Store
}

// NewMemoService creates a MemoService over the store.
func NewMemoService(store *sqlite.Store) *MemoService {
	return &MemoService{store: store}
}

// Create inserts a new memo, stamping both timestamps.
func (s *MemoService) Create(memo *types.Memo) error {
	now := time.Now().UTC()
	memo.CreatedAt = now
	memo.UpdatedAt = now
	return s.store.Memos().Add(memo)
}

// Get retrieves a memo by ID with its ordered label list.
func (s *MemoService) Get(id string) (*types.Memo, error) {
	return s.store.Memos().Get(id)
}

// GetByUser returns the user's memos, most recently updated first.
func (s *MemoService) GetByUser(userID string) ([]*types.Memo, error) {
	return s.store.Memos().GetByUser(userID)
}

// Update rewrites a memo, restamping updated_at.
func (s *MemoService) Update(memo *types.Memo) error {
	memo.UpdatedAt = time.Now().UTC()
	return s.store.Memos().Update(memo)
}

// Delete removes a memo and its label associations.
func (s *MemoService) Delete(id string) error {
	return s.store.Memos().Delete(id)
}

// AddLabel associates a label with a memo; idempotent.
func (s *MemoService) AddLabel(memoID, labelID string) error {
	return s.store.Memos().AddLabel(memoID, labelID)
}

// RemoveLabel dissociates a label from a memo; a missing association is a
// no-op.
func (s *MemoService) RemoveLabel(memoID, labelID string) error {
	return s.store.Memos().RemoveLabel(memoID, labelID)
}
