// This file implements the Users table accessor: CRUD over user rows plus
// the case-insensitive uniqueness probes consumed by the user service.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// userColumns is the column list shared by every Users query, in scan order.
const userColumns = `id, username, password_hash, email, first_name, last_name,
	phone, date_of_birth, bio, avatar, role, is_active, is_system, created_at, updated_at`

// UsersTable maps between types.User and rows of the Users table.
//
// Update and Delete embed `is_system = 0` in their write predicate: a
// protected row is left untouched even if the flag flips between a caller's
// check and the statement, because the guard executes inside the same
// statement. Matching zero rows is not an error here; the service layer
// turns that silence into typed failures.
type UsersTable struct {
	store *Store
}

// rowScanner abstracts sql.Row and sql.Rows for the hydrate helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// Get retrieves a user by ID. Returns ErrInvalidID for an empty id and
// ErrNotFound when the id does not resolve.
func (t *UsersTable) Get(id string) (*types.User, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	row := t.store.db.QueryRow(
		"SELECT "+userColumns+" FROM Users WHERE id = ?", id,
	)
	user, err := hydrateUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return user, nil
}

// GetAll returns all users ordered by username ascending. The username
// column carries NOCASE collation, so the ordering is case-insensitive.
func (t *UsersTable) GetAll() ([]*types.User, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	rows, err := t.store.db.Query(
		"SELECT " + userColumns + " FROM Users ORDER BY username ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []*types.User{}
	for rows.Next() {
		user, err := hydrateUser(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// Add inserts a new user row. A missing ID is generated and zero timestamps
// are stamped with the current UTC time before the insert. A username or
// email conflicting case-insensitively with an existing row is rejected by
// the unique indexes before any row is written.
func (t *UsersTable) Add(user *types.User) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	stampNew(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	_, err := t.store.db.Exec(
		`INSERT INTO Users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.Email,
		nullIfEmpty(user.FirstName), nullIfEmpty(user.LastName),
		nullIfEmpty(user.Phone), encodeTimePtr(user.DateOfBirth),
		nullIfEmpty(user.Bio), nullIfEmpty(user.Avatar),
		user.Role, user.IsActive, user.IsSystem,
		encodeTime(user.CreatedAt), encodeTime(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("adding user %s: %w", user.Username, err)
	}
	return nil
}

// Update rewrites a user row. The predicate excludes system rows; an update
// against a missing or protected row writes nothing and returns nil.
func (t *UsersTable) Update(user *types.User) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec(
		`UPDATE Users SET username = ?, password_hash = ?, email = ?,
		 first_name = ?, last_name = ?, phone = ?, date_of_birth = ?,
		 bio = ?, avatar = ?, role = ?, is_active = ?, updated_at = ?
		 WHERE id = ? AND is_system = 0`,
		user.Username, user.PasswordHash, user.Email,
		nullIfEmpty(user.FirstName), nullIfEmpty(user.LastName),
		nullIfEmpty(user.Phone), encodeTimePtr(user.DateOfBirth),
		nullIfEmpty(user.Bio), nullIfEmpty(user.Avatar),
		user.Role, user.IsActive, encodeTime(user.UpdatedAt),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", user.ID, err)
	}
	return nil
}

// Delete removes a user row and, through the cascade rules, every label,
// memo, memo-label association, contact, and contact child the user owns.
// The predicate excludes system rows; deleting a missing or protected row
// is a no-op.
func (t *UsersTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec(
		"DELETE FROM Users WHERE id = ? AND is_system = 0", id,
	)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	return nil
}

// UsernameExists reports whether any user holds the username, compared
// case-insensitively.
func (t *UsersTable) UsernameExists(username string) (bool, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return false, types.ErrStoreClosed
	}

	var exists bool
	err := t.store.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM Users WHERE username = ?)", username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("probing username %q: %w", username, err)
	}
	return exists, nil
}

// EmailExists reports whether any user holds the email, compared
// case-insensitively.
func (t *UsersTable) EmailExists(email string) (bool, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return false, types.ErrStoreClosed
	}

	var exists bool
	err := t.store.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM Users WHERE email = ?)", email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("probing email %q: %w", email, err)
	}
	return exists, nil
}

// Count returns the total number of user rows.
func (t *UsersTable) Count() (int, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return 0, types.ErrStoreClosed
	}

	var n int
	if err := t.store.db.QueryRow("SELECT COUNT(*) FROM Users").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// stampNew fills a missing identifier and zero timestamps ahead of an
// insert. Identifiers are generated by the writer before insertion and
// never reassigned.
func stampNew(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = newID()
	}
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}

// hydrateUser converts a Users row into a *types.User.
func hydrateUser(row rowScanner) (*types.User, error) {
	var u types.User
	var firstName, lastName, phone, dob, bio, avatar sql.NullString
	var id, createdAt, updatedAt string

	err := row.Scan(
		&id, &u.Username, &u.PasswordHash, &u.Email,
		&firstName, &lastName, &phone, &dob, &bio, &avatar,
		&u.Role, &u.IsActive, &u.IsSystem, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if u.ID, err = parseID(id); err != nil {
		return nil, err
	}
	u.FirstName = textOrEmpty(firstName)
	u.LastName = textOrEmpty(lastName)
	u.Phone = textOrEmpty(phone)
	u.Bio = textOrEmpty(bio)
	u.Avatar = textOrEmpty(avatar)
	if u.DateOfBirth, err = parseTimePtr(dob); err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
