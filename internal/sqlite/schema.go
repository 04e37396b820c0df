// Schema DDL for all tables. The table set and column encodings are a
// contract shared with other readers of the database file: text-encoded
// UUID keys, round-trip UTC timestamp text, JSON-text tag lists, and
// cascading foreign keys on every parent side.
package sqlite

import (
	"database/sql"
	"fmt"
)

const (
	createUsers = `CREATE TABLE IF NOT EXISTS Users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL COLLATE NOCASE,
    password_hash TEXT NOT NULL,
    email TEXT NOT NULL COLLATE NOCASE,
    first_name TEXT,
    last_name TEXT,
    phone TEXT,
    date_of_birth TEXT,
    bio TEXT,
    avatar TEXT,
    role TEXT NOT NULL DEFAULT 'user',
    is_active INTEGER NOT NULL DEFAULT 1,
    is_system INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createLabels = `CREATE TABLE IF NOT EXISTS Labels (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    color TEXT NOT NULL DEFAULT '#808080',
    is_system INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES Users(id) ON DELETE CASCADE
);`

	createMemos = `CREATE TABLE IF NOT EXISTS Memos (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    is_system INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES Users(id) ON DELETE CASCADE
);`

	createMemoLabels = `CREATE TABLE IF NOT EXISTS MemoLabels (
    memo_id TEXT NOT NULL,
    label_id TEXT NOT NULL,
    PRIMARY KEY (memo_id, label_id),
    FOREIGN KEY (memo_id) REFERENCES Memos(id) ON DELETE CASCADE,
    FOREIGN KEY (label_id) REFERENCES Labels(id) ON DELETE CASCADE
);`

	createContacts = `CREATE TABLE IF NOT EXISTS Contacts (
    id TEXT PRIMARY KEY,
    owner_user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    is_system INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (owner_user_id) REFERENCES Users(id) ON DELETE CASCADE
);`

	createContactEmailAddresses = `CREATE TABLE IF NOT EXISTS ContactEmailAddresses (
    id TEXT PRIMARY KEY,
    contact_id TEXT NOT NULL,
    email TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'other',
    is_primary INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT '[]',
    is_system INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (contact_id) REFERENCES Contacts(id) ON DELETE CASCADE
);`

	createContactPhoneNumbers = `CREATE TABLE IF NOT EXISTS ContactPhoneNumbers (
    id TEXT PRIMARY KEY,
    contact_id TEXT NOT NULL,
    number TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'other',
    is_primary INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT '[]',
    is_system INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (contact_id) REFERENCES Contacts(id) ON DELETE CASCADE
);`

	createContactAddresses = `CREATE TABLE IF NOT EXISTS ContactAddresses (
    id TEXT PRIMARY KEY,
    contact_id TEXT NOT NULL,
    street TEXT,
    city TEXT,
    state TEXT,
    postal_code TEXT,
    country TEXT,
    type TEXT NOT NULL DEFAULT 'home',
    is_primary INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT '[]',
    is_system INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (contact_id) REFERENCES Contacts(id) ON DELETE CASCADE
);`
)

// Unique and lookup indexes. Username and email uniqueness is
// case-insensitive: the columns carry NOCASE collation, so the unique
// indexes compare case-insensitively and reject a conflicting insert before
// any row is written.
const (
	idxUsersUsername   = `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON Users(username);`
	idxUsersEmail      = `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON Users(email);`
	idxLabelsUser      = `CREATE INDEX IF NOT EXISTS idx_labels_user ON Labels(user_id);`
	idxMemosUser       = `CREATE INDEX IF NOT EXISTS idx_memos_user ON Memos(user_id);`
	idxMemoLabelsLabel = `CREATE INDEX IF NOT EXISTS idx_memo_labels_label ON MemoLabels(label_id);`
	idxContactsOwner   = `CREATE INDEX IF NOT EXISTS idx_contacts_owner ON Contacts(owner_user_id);`
	idxEmailsContact   = `CREATE INDEX IF NOT EXISTS idx_contact_emails_contact ON ContactEmailAddresses(contact_id);`
	idxPhonesContact   = `CREATE INDEX IF NOT EXISTS idx_contact_phones_contact ON ContactPhoneNumbers(contact_id);`
	idxAddressesContact = `CREATE INDEX IF NOT EXISTS idx_contact_addresses_contact ON ContactAddresses(contact_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createUsers,
	createLabels,
	createMemos,
	createMemoLabels,
	createContacts,
	createContactEmailAddresses,
	createContactPhoneNumbers,
	createContactAddresses,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxUsersUsername,
	idxUsersEmail,
	idxLabelsUser,
	idxMemosUser,
	idxMemoLabelsLabel,
	idxContactsOwner,
	idxEmailsContact,
	idxPhonesContact,
	idxAddressesContact,
}

// exportTables lists every table in the schema, in dependency order. Used by
// ExportJSONL.
var exportTables = []string{
	"Users",
	"Labels",
	"Memos",
	"MemoLabels",
	"Contacts",
	"ContactEmailAddresses",
	"ContactPhoneNumbers",
	"ContactAddresses",
}

// createSchema executes all DDL statements. A schema failure is fatal to
// Open; no partial-schema recovery is attempted.
func createSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
