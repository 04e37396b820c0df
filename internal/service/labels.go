package service

import (
	"time"

	"github.com/mesh-intelligence/satchel/internal/sqlite"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// LabelService is a thin wrapper over the Labels table: timestamp stamping
// on every mutation plus the case-insensitive per-owner name lookup. Name
// uniqueness stays soft; callers that want it check GetByName first.
type LabelService struct {
	store *sqlite.Store
}

// NewLabelService creates a LabelService over the store.
func NewLabelService(store *sqlite.Store) *LabelService {
	return &LabelService{store: store}
}

// Create inserts a new label, stamping both timestamps.
func (s *LabelService) Create(label *types.Label) error {
	now := time.Now().UTC()
	label.CreatedAt = now
	label.UpdatedAt = now
	return s.store.Labels().Add(label)
}

// Get retrieves a label by ID.
func (s *LabelService) Get(id string) (*types.Label, error) {
	return s.store.Labels().Get(id)
}

// GetByUser returns the user's labels ordered by name.
func (s *LabelService) GetByUser(userID string) ([]*types.Label, error) {
	return s.store.Labels().GetByUser(userID)
}

// GetByName looks up a user's label by name, case-insensitively.
func (s *LabelService) GetByName(userID, name string) (*types.Label, error) {
	return s.store.Labels().GetByName(userID, name)
}

// Update rewrites a label, restamping updated_at.
func (s *LabelService) Update(label *types.Label) error {
	label.UpdatedAt = time.Now().UTC()
	return s.store.Labels().Update(label)
}

// Delete removes a label; the cascade rule clears its memo associations.
func (s *LabelService) Delete(id string) error {
	return s.store.Labels().Delete(id)
}
