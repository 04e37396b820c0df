// Package service implements the domain services over the storage layer:
// the business rules that no storage constraint can express, and the
// translation of repository outcomes into the typed errors callers act on.
// Ownership and role checks belong to the caller, not this layer.
package service

import (
	"time"

	"github.com/mesh-intelligence/satchel/internal/sqlite"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// UserService wraps the Users table with uniqueness probes, system-record
// protection, credential handling, and default-label seeding.
type UserService struct {
	store  *sqlite.Store
	hasher types.PasswordHasher
}

// NewUserService creates a UserService over the store and hasher.
func NewUserService(store *sqlite.Store, hasher types.PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// Create registers a new account. The username probe runs before the email
// probe, so when both would conflict the username is the one reported. On
// either hit the call fails with a DuplicateFieldError and performs zero
// writes. On success the plaintext credential is hashed, timestamps are
// stamped, the row is inserted, and the account receives the default label
// set. Seeding happens for every created account, not only the admin.
func (s *UserService) Create(user *types.User, password string) error {
	exists, err := s.store.Users().UsernameExists(user.Username)
	if err != nil {
		return err
	}
	if exists {
		return &types.DuplicateFieldError{Field: "username", Value: user.Username}
	}

	exists, err = s.store.Users().EmailExists(user.Email)
	if err != nil {
		return err
	}
	if exists {
		return &types.DuplicateFieldError{Field: "email", Value: user.Email}
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = digest
	if user.Role == "" {
		user.Role = types.RoleUser
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.store.Users().Add(user); err != nil {
		return err
	}
	return s.store.SeedDefaultLabels(user.ID)
}

// Get retrieves an account by ID. Returns ErrNotFound when the id does not
// resolve.
func (s *UserService) Get(id string) (*types.User, error) {
	return s.store.Users().Get(id)
}

// GetAll returns all accounts ordered by username.
func (s *UserService) GetAll() ([]*types.User, error) {
	return s.store.Users().GetAll()
}

// Update rewrites an account. The repository's write predicate would
// silently skip a missing or protected row; this layer makes the outcome
// explicit instead, failing with ErrNotFound or ErrSystemProtected before
// delegating.
func (s *UserService) Update(user *types.User) error {
	existing, err := s.store.Users().Get(user.ID)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return types.ErrSystemProtected
	}

	user.UpdatedAt = time.Now().UTC()
	return s.store.Users().Update(user)
}

// Delete removes an account and, through the cascade rules, everything it
// owns. Fails with ErrNotFound or ErrSystemProtected before delegating.
func (s *UserService) Delete(id string) error {
	existing, err := s.store.Users().Get(id)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return types.ErrSystemProtected
	}

	return s.store.Users().Delete(id)
}

// ChangePassword verifies the current credential and stores a new digest.
// Returns ErrNotFound when the id does not resolve and ErrUnauthorized when
// the current credential does not verify.
func (s *UserService) ChangePassword(id, current, next string) error {
	user, err := s.store.Users().Get(id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(current, user.PasswordHash) {
		return types.ErrUnauthorized
	}

	digest, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	user.PasswordHash = digest
	user.UpdatedAt = time.Now().UTC()
	return s.store.Users().Update(user)
}
