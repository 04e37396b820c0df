// This file implements the Contacts table accessor and its three child
// tables. Reads compose the aggregate with one root query plus one query per
// child table; list queries repeat that fan-out per contact. Writes issue
// one statement per row with no wrapping transaction, so a failure mid-
// sequence can leave a root without some of its children. Both choices are
// part of the storage contract, not accidents.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

const contactColumns = `id, owner_user_id, name, tags, is_system, created_at, updated_at`

const (
	emailColumns   = `id, contact_id, email, type, is_primary, tags, is_system, created_at, updated_at`
	phoneColumns   = `id, contact_id, number, type, is_primary, tags, is_system, created_at, updated_at`
	addressColumns = `id, contact_id, street, city, state, postal_code, country, type, is_primary, tags, is_system, created_at, updated_at`
)

// ContactsTable maps between types.Contact and rows of the Contacts table
// plus the ContactEmailAddresses, ContactPhoneNumbers, and ContactAddresses
// child tables.
type ContactsTable struct {
	store *Store
}

// Get retrieves a contact by ID and assembles the aggregate from the three
// child tables.
func (t *ContactsTable) Get(id string) (*types.Contact, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	row := t.store.db.QueryRow(
		"SELECT "+contactColumns+" FROM Contacts WHERE id = ?", id,
	)
	contact, err := hydrateContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting contact %s: %w", id, err)
	}
	if err := t.hydrateChildren(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// GetAll returns all contacts ordered by name ascending, case-insensitively,
// each with its children assembled.
func (t *ContactsTable) GetAll() ([]*types.Contact, error) {
	return t.query("SELECT " + contactColumns + " FROM Contacts ORDER BY name COLLATE NOCASE ASC")
}

// GetByUser returns the owner's contacts ordered by name ascending,
// case-insensitively, each with its children assembled.
func (t *ContactsTable) GetByUser(userID string) ([]*types.Contact, error) {
	return t.query(
		"SELECT "+contactColumns+" FROM Contacts WHERE owner_user_id = ? ORDER BY name COLLATE NOCASE ASC",
		userID,
	)
}

// Add inserts the contact root row, then each child row as its own
// statement. Missing identifiers and zero timestamps are stamped before
// writing, on the root and on every child.
func (t *ContactsTable) Add(contact *types.Contact) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	stampNew(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)

	tags, err := encodeStringList(contact.Tags)
	if err != nil {
		return err
	}
	_, err = t.store.db.Exec(
		`INSERT INTO Contacts (`+contactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		contact.ID, contact.UserID, contact.Name, tags, contact.IsSystem,
		encodeTime(contact.CreatedAt), encodeTime(contact.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("adding contact %q: %w", contact.Name, err)
	}

	return t.insertChildren(contact)
}

// Update rewrites the contact root row, then replaces the child rows: each
// child table is cleared for the contact and reinserted from the aggregate.
// Every statement commits independently.
func (t *ContactsTable) Update(contact *types.Contact) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	tags, err := encodeStringList(contact.Tags)
	if err != nil {
		return err
	}
	_, err = t.store.db.Exec(
		`UPDATE Contacts SET name = ?, tags = ?, updated_at = ? WHERE id = ?`,
		contact.Name, tags, encodeTime(contact.UpdatedAt), contact.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact %s: %w", contact.ID, err)
	}

	for _, table := range []string{"ContactEmailAddresses", "ContactPhoneNumbers", "ContactAddresses"} {
		if _, err := t.store.db.Exec(
			"DELETE FROM "+table+" WHERE contact_id = ?", contact.ID,
		); err != nil {
			return fmt.Errorf("clearing %s for contact %s: %w", table, contact.ID, err)
		}
	}

	return t.insertChildren(contact)
}

// Delete removes a contact row; its child rows go with it through the
// cascade rules.
func (t *ContactsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return types.ErrStoreClosed
	}

	_, err := t.store.db.Exec("DELETE FROM Contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting contact %s: %w", id, err)
	}
	return nil
}

// insertChildren writes every child row of the aggregate, one statement
// each. Caller holds the store read lock.
func (t *ContactsTable) insertChildren(contact *types.Contact) error {
	for i := range contact.Emails {
		e := &contact.Emails[i]
		e.ContactID = contact.ID
		stampNew(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		tags, err := encodeStringList(e.Tags)
		if err != nil {
			return err
		}
		_, err = t.store.db.Exec(
			`INSERT INTO ContactEmailAddresses (`+emailColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.ContactID, e.Email, e.Type, e.IsPrimary, tags,
			e.IsSystem, encodeTime(e.CreatedAt), encodeTime(e.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("adding email for contact %s: %w", contact.ID, err)
		}
	}

	for i := range contact.Phones {
		p := &contact.Phones[i]
		p.ContactID = contact.ID
		stampNew(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		tags, err := encodeStringList(p.Tags)
		if err != nil {
			return err
		}
		_, err = t.store.db.Exec(
			`INSERT INTO ContactPhoneNumbers (`+phoneColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.ContactID, p.Number, p.Type, p.IsPrimary, tags,
			p.IsSystem, encodeTime(p.CreatedAt), encodeTime(p.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("adding phone for contact %s: %w", contact.ID, err)
		}
	}

	for i := range contact.Addresses {
		a := &contact.Addresses[i]
		a.ContactID = contact.ID
		stampNew(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		tags, err := encodeStringList(a.Tags)
		if err != nil {
			return err
		}
		_, err = t.store.db.Exec(
			`INSERT INTO ContactAddresses (`+addressColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.ContactID, nullIfEmpty(a.Street), nullIfEmpty(a.City),
			nullIfEmpty(a.State), nullIfEmpty(a.PostalCode), nullIfEmpty(a.Country),
			a.Type, a.IsPrimary, tags, a.IsSystem,
			encodeTime(a.CreatedAt), encodeTime(a.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("adding address for contact %s: %w", contact.ID, err)
		}
	}

	return nil
}

// hydrateChildren fills the three child collections for a contact. Caller
// holds the store read lock.
func (t *ContactsTable) hydrateChildren(contact *types.Contact) error {
	emails, err := t.queryEmails(contact.ID)
	if err != nil {
		return err
	}
	phones, err := t.queryPhones(contact.ID)
	if err != nil {
		return err
	}
	addresses, err := t.queryAddresses(contact.ID)
	if err != nil {
		return err
	}
	contact.Emails = emails
	contact.Phones = phones
	contact.Addresses = addresses
	return nil
}

func (t *ContactsTable) queryEmails(contactID string) ([]types.EmailAddress, error) {
	rows, err := t.store.db.Query(
		"SELECT "+emailColumns+" FROM ContactEmailAddresses WHERE contact_id = ? ORDER BY created_at ASC",
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying emails for contact %s: %w", contactID, err)
	}
	defer rows.Close()

	emails := []types.EmailAddress{}
	for rows.Next() {
		var e types.EmailAddress
		var id, cID, createdAt, updatedAt string
		var tags sql.NullString
		err := rows.Scan(&id, &cID, &e.Email, &e.Type, &e.IsPrimary, &tags,
			&e.IsSystem, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning email: %w", err)
		}
		if e.ID, err = parseID(id); err != nil {
			return nil, err
		}
		if e.ContactID, err = parseID(cID); err != nil {
			return nil, err
		}
		e.Tags = parseStringList(tags)
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating emails: %w", err)
	}
	return emails, nil
}

func (t *ContactsTable) queryPhones(contactID string) ([]types.PhoneNumber, error) {
	rows, err := t.store.db.Query(
		"SELECT "+phoneColumns+" FROM ContactPhoneNumbers WHERE contact_id = ? ORDER BY created_at ASC",
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying phones for contact %s: %w", contactID, err)
	}
	defer rows.Close()

	phones := []types.PhoneNumber{}
	for rows.Next() {
		var p types.PhoneNumber
		var id, cID, createdAt, updatedAt string
		var tags sql.NullString
		err := rows.Scan(&id, &cID, &p.Number, &p.Type, &p.IsPrimary, &tags,
			&p.IsSystem, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning phone: %w", err)
		}
		if p.ID, err = parseID(id); err != nil {
			return nil, err
		}
		if p.ContactID, err = parseID(cID); err != nil {
			return nil, err
		}
		p.Tags = parseStringList(tags)
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phones: %w", err)
	}
	return phones, nil
}

func (t *ContactsTable) queryAddresses(contactID string) ([]types.ContactAddress, error) {
	rows, err := t.store.db.Query(
		"SELECT "+addressColumns+" FROM ContactAddresses WHERE contact_id = ? ORDER BY created_at ASC",
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying addresses for contact %s: %w", contactID, err)
	}
	defer rows.Close()

	addresses := []types.ContactAddress{}
	for rows.Next() {
		var a types.ContactAddress
		var id, cID, createdAt, updatedAt string
		var street, city, state, postalCode, country, tags sql.NullString
		err := rows.Scan(&id, &cID, &street, &city, &state, &postalCode, &country,
			&a.Type, &a.IsPrimary, &tags, &a.IsSystem, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning address: %w", err)
		}
		if a.ID, err = parseID(id); err != nil {
			return nil, err
		}
		if a.ContactID, err = parseID(cID); err != nil {
			return nil, err
		}
		a.Street = textOrEmpty(street)
		a.City = textOrEmpty(city)
		a.State = textOrEmpty(state)
		a.PostalCode = textOrEmpty(postalCode)
		a.Country = textOrEmpty(country)
		a.Tags = parseStringList(tags)
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating addresses: %w", err)
	}
	return addresses, nil
}

// query runs a multi-row contact query and assembles each aggregate.
func (t *ContactsTable) query(q string, args ...any) ([]*types.Contact, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if !t.store.open {
		return nil, types.ErrStoreClosed
	}

	rows, err := t.store.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*types.Contact{}
	for rows.Next() {
		contact, err := hydrateContact(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	for _, contact := range contacts {
		if err := t.hydrateChildren(contact); err != nil {
			return nil, err
		}
	}
	return contacts, nil
}

// hydrateContact converts a Contacts row into a *types.Contact. Children are
// hydrated separately.
func hydrateContact(row rowScanner) (*types.Contact, error) {
	var c types.Contact
	var id, userID, createdAt, updatedAt string
	var tags sql.NullString

	err := row.Scan(&id, &userID, &c.Name, &tags, &c.IsSystem, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if c.ID, err = parseID(id); err != nil {
		return nil, err
	}
	if c.UserID, err = parseID(userID); err != nil {
		return nil, err
	}
	c.Tags = parseStringList(tags)
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
