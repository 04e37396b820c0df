// Unit tests for the user service.
package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/satchel/internal/auth"
	"github.com/mesh-intelligence/satchel/internal/sqlite"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// newTestStore opens a Store over a fresh temp directory and closes it when
// the test finishes.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s := sqlite.NewStore()
	require.NoError(t, s.Open(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newUserService builds a UserService with the cheapest bcrypt cost so tests
// stay fast.
func newUserService(t *testing.T) (*UserService, *sqlite.Store) {
	t.Helper()
	store := newTestStore(t)
	return NewUserService(store, auth.NewBcryptHasherWithCost(bcrypt.MinCost)), store
}

// createUser registers an account through the service.
func createUser(t *testing.T, svc *UserService, username, password string) *types.User {
	t.Helper()
	user := &types.User{
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	require.NoError(t, svc.Create(user, password))
	return user
}

func TestUserServiceCreate(t *testing.T) {
	t.Run("hashes the credential and defaults the role", func(t *testing.T) {
		svc, store := newUserService(t)
		user := createUser(t, svc, "alice", "hunter2")

		got, err := store.Users().Get(user.ID)
		require.NoError(t, err)
		assert.Equal(t, types.RoleUser, got.Role)
		assert.NotEqual(t, "hunter2", got.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("hunter2")))
		assert.False(t, got.CreatedAt.IsZero())
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	})

	t.Run("seeds the default label set", func(t *testing.T) {
		svc, store := newUserService(t)
		user := createUser(t, svc, "alice", "pw")

		labels, err := store.Labels().GetByUser(user.ID)
		require.NoError(t, err)
		require.Len(t, labels, 10)

		names := map[string]bool{}
		for _, l := range labels {
			names[l.Name] = true
		}
		for _, want := range sqlite.DefaultLabelNames() {
			assert.True(t, names[want], "default label %q missing", want)
		}
	})

	t.Run("keeps an explicit role", func(t *testing.T) {
		svc, _ := newUserService(t)
		user := &types.User{Username: "boss", Email: "boss@example.com", Role: types.RoleAdmin}
		require.NoError(t, svc.Create(user, "pw"))
		assert.Equal(t, types.RoleAdmin, user.Role)
	})

	t.Run("rejects duplicate usernames case-insensitively with zero writes", func(t *testing.T) {
		svc, store := newUserService(t)
		createUser(t, svc, "alice", "pw")

		dup := &types.User{Username: "ALICE", Email: "fresh@example.com"}
		err := svc.Create(dup, "pw")

		var dupErr *types.DuplicateFieldError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "username", dupErr.Field)
		assert.Equal(t, "ALICE", dupErr.Value)

		n, err := store.Users().Count()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("rejects duplicate emails case-insensitively", func(t *testing.T) {
		svc, _ := newUserService(t)
		createUser(t, svc, "alice", "pw")

		dup := &types.User{Username: "carol", Email: "ALICE@EXAMPLE.COM"}
		err := svc.Create(dup, "pw")

		var dupErr *types.DuplicateFieldError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "email", dupErr.Field)
	})

	t.Run("reports the username when both fields conflict", func(t *testing.T) {
		svc, _ := newUserService(t)
		createUser(t, svc, "alice", "pw")

		dup := &types.User{Username: "alice", Email: "alice@example.com"}
		err := svc.Create(dup, "pw")

		var dupErr *types.DuplicateFieldError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "username", dupErr.Field)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	t.Run("rewrites and restamps", func(t *testing.T) {
		svc, _ := newUserService(t)
		user := createUser(t, svc, "alice", "pw")
		created := user.CreatedAt

		user.Bio = "new bio"
		require.NoError(t, svc.Update(user))

		got, err := svc.Get(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "new bio", got.Bio)
		assert.False(t, got.UpdatedAt.Before(created))
	})

	t.Run("missing account fails with ErrNotFound", func(t *testing.T) {
		svc, _ := newUserService(t)
		ghost := &types.User{ID: "0192e7a0-0000-7000-8000-000000000042", Username: "ghost"}
		assert.ErrorIs(t, svc.Update(ghost), types.ErrNotFound)
	})

	t.Run("system account fails with ErrSystemProtected and stays unchanged", func(t *testing.T) {
		svc, store := newUserService(t)
		require.NoError(t, store.SeedAdminUser("hash"))
		admins, err := store.Users().GetAll()
		require.NoError(t, err)
		admin := admins[0]

		tampered := *admin
		tampered.Email = "evil@example.com"
		assert.ErrorIs(t, svc.Update(&tampered), types.ErrSystemProtected)

		got, err := store.Users().Get(admin.ID)
		require.NoError(t, err)
		assert.Equal(t, admin.Email, got.Email)
	})
}

func TestUserServiceDelete(t *testing.T) {
	t.Run("removes the account", func(t *testing.T) {
		svc, _ := newUserService(t)
		user := createUser(t, svc, "alice", "pw")

		require.NoError(t, svc.Delete(user.ID))
		_, err := svc.Get(user.ID)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("missing account fails with ErrNotFound", func(t *testing.T) {
		svc, _ := newUserService(t)
		err := svc.Delete("0192e7a0-0000-7000-8000-000000000042")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("system account fails with ErrSystemProtected", func(t *testing.T) {
		svc, store := newUserService(t)
		require.NoError(t, store.SeedAdminUser("hash"))
		admins, err := store.Users().GetAll()
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Delete(admins[0].ID), types.ErrSystemProtected)

		_, err = store.Users().Get(admins[0].ID)
		assert.NoError(t, err)
	})
}

func TestUserServiceChangePassword(t *testing.T) {
	t.Run("rotates the digest when the current credential verifies", func(t *testing.T) {
		svc, store := newUserService(t)
		user := createUser(t, svc, "alice", "old-secret")
		oldDigest := user.PasswordHash

		require.NoError(t, svc.ChangePassword(user.ID, "old-secret", "new-secret"))

		got, err := store.Users().Get(user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, oldDigest, got.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("new-secret")))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("old-secret")))
	})

	t.Run("wrong current credential fails with ErrUnauthorized", func(t *testing.T) {
		svc, store := newUserService(t)
		user := createUser(t, svc, "alice", "old-secret")
		oldDigest := user.PasswordHash

		err := svc.ChangePassword(user.ID, "wrong", "new-secret")
		assert.ErrorIs(t, err, types.ErrUnauthorized)

		got, err := store.Users().Get(user.ID)
		require.NoError(t, err)
		assert.Equal(t, oldDigest, got.PasswordHash)
	})

	t.Run("missing account fails with ErrNotFound", func(t *testing.T) {
		svc, _ := newUserService(t)
		err := svc.ChangePassword("0192e7a0-0000-7000-8000-000000000042", "a", "b")
		assert.True(t, errors.Is(err, types.ErrNotFound))
	})
}
