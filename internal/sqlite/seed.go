// This file implements one-time seeding: the protected admin account and the
// default label set every new account receives. Seed inserts are issued one
// statement at a time; a failure mid-set leaves the rows written so far in
// place, and the caller is expected to treat the error as fatal at startup.
package sqlite

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// adminEmail is the email the seeded admin account is created with.
const adminEmail = "admin@satchel.local"

// seedLabel is one (name, color) pair of the default label set.
type seedLabel struct {
	name  string
	color string
}

// defaultLabels is the fixed ordered set seeded for every new account.
var defaultLabels = []seedLabel{
	{"Personal", "#3B82F6"},
	{"Work", "#EF4444"},
	{"Family", "#10B981"},
	{"Friends", "#F59E0B"},
	{"Ideas", "#8B5CF6"},
	{"Travel", "#06B6D4"},
	{"Health", "#22C55E"},
	{"Finance", "#EAB308"},
	{"Shopping", "#EC4899"},
	{"Archive", "#6B7280"},
}

// DefaultLabelNames returns the names of the seeded default label set, in
// seed order.
func DefaultLabelNames() []string {
	names := make([]string, len(defaultLabels))
	for i, l := range defaultLabels {
		names[i] = l.name
	}
	return names
}

// SeedAdminUser creates the protected admin account if no admin-role account
// exists, then seeds its default label set. The credential must arrive
// pre-hashed; this layer never sees plaintext. Idempotent: a store that
// already holds an admin account is left untouched.
func (s *Store) SeedAdminUser(passwordHash string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM Users WHERE role = ?", types.RoleAdmin,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("counting admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	id := newID()
	_, err = s.db.Exec(
		`INSERT INTO Users (id, username, password_hash, email, role,
		 is_active, is_system, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, types.AdminUsername, passwordHash, adminEmail, types.RoleAdmin,
		true, true, encodeTime(now), encodeTime(now),
	)
	if err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	return s.seedDefaultLabels(id)
}

// SeedDefaultLabels creates the default label set for a user. Idempotent per
// user: skipped entirely when the user already owns any label.
func (s *Store) SeedDefaultLabels(userID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return types.ErrStoreClosed
	}
	return s.seedDefaultLabels(userID)
}

// seedDefaultLabels does the work for SeedDefaultLabels. Caller holds the
// store read lock. Each insert is its own statement.
func (s *Store) seedDefaultLabels(userID string) error {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM Labels WHERE user_id = ?", userID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("counting labels for user %s: %w", userID, err)
	}
	if count > 0 {
		return nil
	}

	now := encodeTime(time.Now().UTC())
	for _, l := range defaultLabels {
		_, err := s.db.Exec(
			`INSERT INTO Labels (id, user_id, name, color, is_system, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			newID(), userID, l.name, l.color, true, now, now,
		)
		if err != nil {
			return fmt.Errorf("seeding label %q for user %s: %w", l.name, userID, err)
		}
	}
	return nil
}
