package service

import (
	"time"

	"github.com/mesh-intelligence/satchel/internal/sqlite"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// ContactService is a thin wrapper over the Contacts table: timestamp
// stamping on every mutation. The storage layer assembles and replaces the
// child collections.
type ContactService struct {
	store *sqlite.Store
}

// NewContactService creates a ContactService over the store.
func NewContactService(store *sqlite.Store) *ContactService {
	return &ContactService{store: store}
}

// Create inserts a new contact aggregate, stamping both timestamps on the
// root; the storage layer stamps the children.
func (s *ContactService) Create(contact *types.Contact) error {
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	return s.store.Contacts().Add(contact)
}

// Get retrieves a contact aggregate by ID.
func (s *ContactService) Get(id string) (*types.Contact, error) {
	return s.store.Contacts().Get(id)
}

// GetByUser returns the owner's contacts ordered by name.
func (s *ContactService) GetByUser(userID string) ([]*types.Contact, error) {
	return s.store.Contacts().GetByUser(userID)
}

// Update rewrites a contact aggregate, restamping updated_at on the root.
func (s *ContactService) Update(contact *types.Contact) error {
	contact.UpdatedAt = time.Now().UTC()
	return s.store.Contacts().Update(contact)
}

// Delete removes a contact and its child rows.
func (s *ContactService) Delete(id string) error {
	return s.store.Contacts().Delete(id)
}
