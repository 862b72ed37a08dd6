package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// DBFile is the database file name inside the data directory.
const DBFile = "resumechat.db"

// pragmas enable WAL so a query can read while an ingestion writes, and wait
// for locks instead of failing with SQLITE_BUSY.
const pragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// Store is one SQLite database shared by the vector index and manifest store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) DBFile in dataDir and brings its schema
// up to date. An empty dataDir selects ~/.resumechat/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".resumechat", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, DBFile)
	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	migrations, err := loadMigrations(migrationFS, migrationDir)
	if err == nil {
		err = applyMigrations(db, migrations)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error { return s.db.Close() }
func (s *Store) Path() string { return s.path }

// VectorIndex returns the index backed by this database. Closing it leaves
// the store open.
func (s *Store) VectorIndex() driven.VectorIndex {
	return &vectorIndex{store: s}
}

// ManifestStore returns the manifest store backed by this database.
func (s *Store) ManifestStore() driven.ManifestStore {
	return &manifestStore{store: s}
}
