// Unit tests for the Contacts table accessor and its child tables.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestContactsAddGet(t *testing.T) {
	t.Run("round-trips a full aggregate", func(t *testing.T) {
		s := newTestStore(t)
		user := addTestUser(t, s, "alice")

		contact := &types.Contact{
			UserID: user.ID,
			Name:   "Jane Doe",
			Tags:   []string{"colleague", "book club"},
			Emails: []types.EmailAddress{
				{Email: "jane@work.example.com", Type: types.EmailTypeWork, IsPrimary: true},
				{Email: "jane@home.example.com", Type: types.EmailTypePersonal},
			},
			Phones: []types.PhoneNumber{
				{Number: "+1-555-0101", Type: types.PhoneTypeMobile, IsPrimary: true},
			},
			Addresses: []types.ContactAddress{
				{
					Street:     "1 Main St",
					City:       "Springfield",
					State:      "IL",
					PostalCode: "62701",
					Country:    "USA",
					Type:       types.AddressTypeHome,
					IsPrimary:  true,
				},
			},
		}
		require.NoError(t, s.Contacts().Add(contact))
		require.NotEmpty(t, contact.ID)

		got, err := s.Contacts().Get(contact.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, []string{"colleague", "book club"}, got.Tags)

		require.Len(t, got.Emails, 2)
		assert.Equal(t, "jane@work.example.com", got.Emails[0].Email)
		assert.Equal(t, types.EmailTypeWork, got.Emails[0].Type)
		assert.True(t, got.Emails[0].IsPrimary)
		assert.Equal(t, contact.ID, got.Emails[0].ContactID)
		assert.Equal(t, []string{}, got.Emails[0].Tags)
		assert.Equal(t, "jane@home.example.com", got.Emails[1].Email)
		assert.False(t, got.Emails[1].IsPrimary)

		require.Len(t, got.Phones, 1)
		assert.Equal(t, "+1-555-0101", got.Phones[0].Number)
		assert.Equal(t, types.PhoneTypeMobile, got.Phones[0].Type)
		assert.True(t, got.Phones[0].IsPrimary)

		require.Len(t, got.Addresses, 1)
		assert.Equal(t, "1 Main St", got.Addresses[0].Street)
		assert.Equal(t, "Springfield", got.Addresses[0].City)
		assert.Equal(t, "IL", got.Addresses[0].State)
		assert.Equal(t, "62701", got.Addresses[0].PostalCode)
		assert.Equal(t, "USA", got.Addresses[0].Country)
		assert.Equal(t, types.AddressTypeHome, got.Addresses[0].Type)
	})

	t.Run("contact with no children or tags", func(t *testing.T) {
		s := newTestStore(t)
		user := addTestUser(t, s, "alice")

		contact := &types.Contact{UserID: user.ID, Name: "Minimal"}
		require.NoError(t, s.Contacts().Add(contact))

		got, err := s.Contacts().Get(contact.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got.Tags)
		assert.Equal(t, []types.EmailAddress{}, got.Emails)
		assert.Equal(t, []types.PhoneNumber{}, got.Phones)
		assert.Equal(t, []types.ContactAddress{}, got.Addresses)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Contacts().Get(newID())
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestContactsGetByUser(t *testing.T) {
	t.Run("scopes to the owner and orders by name", func(t *testing.T) {
		s := newTestStore(t)
		alice := addTestUser(t, s, "alice")
		bob := addTestUser(t, s, "bob")

		for _, name := range []string{"zoe", "Adam", "mike"} {
			require.NoError(t, s.Contacts().Add(&types.Contact{
				UserID: alice.ID,
				Name:   name,
				Emails: []types.EmailAddress{{Email: name + "@example.com", Type: types.EmailTypeOther}},
			}))
		}
		require.NoError(t, s.Contacts().Add(&types.Contact{UserID: bob.ID, Name: "Bobs friend"}))

		contacts, err := s.Contacts().GetByUser(alice.ID)
		require.NoError(t, err)
		require.Len(t, contacts, 3)
		assert.Equal(t, "Adam", contacts[0].Name)
		assert.Equal(t, "mike", contacts[1].Name)
		assert.Equal(t, "zoe", contacts[2].Name)
		for _, c := range contacts {
			assert.Len(t, c.Emails, 1)
		}
	})
}

func TestContactsUpdate(t *testing.T) {
	t.Run("replaces the child rows wholesale", func(t *testing.T) {
		s := newTestStore(t)
		user := addTestUser(t, s, "alice")

		contact := &types.Contact{
			UserID: user.ID,
			Name:   "Jane",
			Emails: []types.EmailAddress{
				{Email: "old@example.com", Type: types.EmailTypePersonal},
			},
			Phones: []types.PhoneNumber{
				{Number: "+1-555-0100", Type: types.PhoneTypeHome},
			},
		}
		require.NoError(t, s.Contacts().Add(contact))
		oldEmailID := contact.Emails[0].ID

		contact.Name = "Jane Doe"
		contact.Tags = []string{"vip"}
		contact.Emails = []types.EmailAddress{
			{Email: "new@example.com", Type: types.EmailTypeWork, IsPrimary: true},
		}
		contact.Phones = nil
		contact.UpdatedAt = contact.UpdatedAt.Add(time.Minute)
		require.NoError(t, s.Contacts().Update(contact))

		got, err := s.Contacts().Get(contact.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, []string{"vip"}, got.Tags)
		require.Len(t, got.Emails, 1)
		assert.Equal(t, "new@example.com", got.Emails[0].Email)
		assert.NotEqual(t, oldEmailID, got.Emails[0].ID)
		assert.Empty(t, got.Phones)
	})
}

func TestContactsDelete(t *testing.T) {
	t.Run("removes the root and all children", func(t *testing.T) {
		s := newTestStore(t)
		user := addTestUser(t, s, "alice")

		contact := &types.Contact{
			UserID:    user.ID,
			Name:      "Jane",
			Emails:    []types.EmailAddress{{Email: "j@example.com", Type: types.EmailTypeWork}},
			Phones:    []types.PhoneNumber{{Number: "+1-555-0100", Type: types.PhoneTypeMobile}},
			Addresses: []types.ContactAddress{{City: "Springfield", Type: types.AddressTypeHome}},
		}
		require.NoError(t, s.Contacts().Add(contact))

		require.NoError(t, s.Contacts().Delete(contact.ID))

		_, err := s.Contacts().Get(contact.ID)
		assert.ErrorIs(t, err, types.ErrNotFound)
		for _, table := range []string{"ContactEmailAddresses", "ContactPhoneNumbers", "ContactAddresses"} {
			var n int
			require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
			assert.Zero(t, n, "%s rows should cascade", table)
		}
	})

	t.Run("deleting an absent contact is a no-op", func(t *testing.T) {
		s := newTestStore(t)
		assert.NoError(t, s.Contacts().Delete(newID()))
	})
}
