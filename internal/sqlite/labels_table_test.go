// Unit tests for the Labels table accessor.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestLabelsAddGet(t *testing.T) {
	t.Run("round-trips a label", func(t *testing.T) {
		s := newTestStore(t)
		user := addTestUser(t, s, "alice")

		label := &types.Label{
			UserID:      user.ID,
			Name:        "Work",
			Description: "office things",
			Color:       "#EF4444",
		}
		require.NoError(t, s.Labels().Add(label))
		require.NotEmpty(t, label.ID)

		got, err := s.Labels().Get(label.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)
		assert.Equal(t, "Work", got.Name)
		assert.Equal(t, "office things", got.Description)
		assert.Equal(t, "#EF4444", got.Color)
		assert.False(t, got.IsSystem)
	})

	t.Run("empty color falls back to default gray", func(t *testing.T) {
		s := newTestStore(t)
		user := addTestUser(t, s, "alice")

		label := &types.Label{UserID: user.ID, Name: "Plain"}
		require.NoError(t, s.Labels().Add(label))

		got, err := s.Labels().Get(label.ID)
		require.NoError(t, err)
		assert.Equal(t, types.DefaultLabelColor, got.Color)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Labels().Get(newID())
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestLabelsGetByUser(t *testing.T) {
	t.Run("scopes to the owner and orders by name", func(t *testing.T) {
		s := newTestStore(t)
		alice := addTestUser(t, s, "alice")
		bob := addTestUser(t, s, "bob")

		for _, name := range []string{"zebra", "Apple", "mango"} {
			require.NoError(t, s.Labels().Add(&types.Label{UserID: alice.ID, Name: name}))
		}
		require.NoError(t, s.Labels().Add(&types.Label{UserID: bob.ID, Name: "bobs"}))

		labels, err := s.Labels().GetByUser(alice.ID)
		require.NoError(t, err)
		require.Len(t, labels, 3)
		assert.Equal(t, "Apple", labels[0].Name)
		assert.Equal(t, "mango", labels[1].Name)
		assert.Equal(t, "zebra", labels[2].Name)
	})
}

func TestLabelsGetByName(t *testing.T) {
	s := newTestStore(t)
	alice := addTestUser(t, s, "alice")
	bob := addTestUser(t, s, "bob")
	require.NoError(t, s.Labels().Add(&types.Label{UserID: alice.ID, Name: "Work"}))

	t.Run("matches case-insensitively", func(t *testing.T) {
		for _, name := range []string{"Work", "work", "WORK"} {
			got, err := s.Labels().GetByName(alice.ID, name)
			require.NoError(t, err, "lookup %q", name)
			assert.Equal(t, "Work", got.Name)
		}
	})

	t.Run("is scoped per owner", func(t *testing.T) {
		_, err := s.Labels().GetByName(bob.ID, "Work")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("absent name is not found", func(t *testing.T) {
		_, err := s.Labels().GetByName(alice.ID, "Play")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestLabelsUpdateDelete(t *testing.T) {
	t.Run("update rewrites name, description, and color", func(t *testing.T) {
		s := newTestStore(t)
		user := addTestUser(t, s, "alice")
		label := &types.Label{UserID: user.ID, Name: "Old", Color: "#111111"}
		require.NoError(t, s.Labels().Add(label))

		label.Name = "New"
		label.Description = "renamed"
		label.Color = "#222222"
		require.NoError(t, s.Labels().Update(label))

		got, err := s.Labels().Get(label.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", got.Name)
		assert.Equal(t, "renamed", got.Description)
		assert.Equal(t, "#222222", got.Color)
	})

	t.Run("delete cascades to memo associations", func(t *testing.T) {
		s := newTestStore(t)
		user := addTestUser(t, s, "alice")
		label := &types.Label{UserID: user.ID, Name: "Work"}
		require.NoError(t, s.Labels().Add(label))
		memo := &types.Memo{UserID: user.ID, Content: "note"}
		require.NoError(t, s.Memos().Add(memo))
		require.NoError(t, s.Memos().AddLabel(memo.ID, label.ID))

		require.NoError(t, s.Labels().Delete(label.ID))

		var n int
		require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM MemoLabels").Scan(&n))
		assert.Zero(t, n)

		got, err := s.Memos().Get(memo.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Labels)
	})

	t.Run("deleting an absent label is a no-op", func(t *testing.T) {
		s := newTestStore(t)
		assert.NoError(t, s.Labels().Delete(newID()))
	})
}

func TestLabelsCountByUser(t *testing.T) {
	s := newTestStore(t)
	alice := addTestUser(t, s, "alice")
	bob := addTestUser(t, s, "bob")
	require.NoError(t, s.Labels().Add(&types.Label{UserID: alice.ID, Name: "One"}))
	require.NoError(t, s.Labels().Add(&types.Label{UserID: alice.ID, Name: "Two"}))

	n, err := s.Labels().CountByUser(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Labels().CountByUser(bob.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
