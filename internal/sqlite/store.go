// Package sqlite implements the Satchel storage layer over a single embedded
// SQLite database file. It owns the relational schema, the scalar codec at
// the storage boundary, and one typed table accessor per aggregate root.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// dbFileName is the database file created inside Config.DataDir.
const dbFileName = "satchel.db"

// Store owns the database handle and the table accessors. All table
// operations go through the connection pool of a single open Store; the
// foreign_keys pragma is applied to every pooled connection through the DSN
// so cascade rules hold regardless of which connection serves a call.
type Store struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sql.DB

	users    *UsersTable
	labels   *LabelsTable
	memos    *MemosTable
	contacts *ContactsTable
}

// NewStore creates a Store. The store is closed; call Open with a Config
// before using the table accessors.
func NewStore() *Store {
	s := &Store{}
	s.users = &UsersTable{store: s}
	s.labels = &LabelsTable{store: s}
	s.memos = &MemosTable{store: s}
	s.contacts = &ContactsTable{store: s}
	return s
}

// Open creates the data directory if needed, opens the database file, and
// brings the schema up to date. Schema creation is idempotent: every DDL
// statement uses IF NOT EXISTS, so opening an already-initialized store is a
// no-op. Returns ErrAlreadyOpen if the store is open.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dsn := "file:" + filepath.Join(dataDir, dbFileName) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.config = config
	s.config.DataDir = dataDir
	s.open = true

	return nil
}

// Close releases the database handle. After Close, all table operations
// return ErrStoreClosed. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.open = false

	return nil
}

// Users returns the Users table accessor.
func (s *Store) Users() *UsersTable { return s.users }

// Labels returns the Labels table accessor.
func (s *Store) Labels() *LabelsTable { return s.labels }

// Memos returns the Memos table accessor.
func (s *Store) Memos() *MemosTable { return s.memos }

// Contacts returns the Contacts table accessor.
func (s *Store) Contacts() *ContactsTable { return s.contacts }
