package sqlite

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

const (
	// DefaultFilename is the name of the sqlite database file created next to
	// the daemon's working directory unless another path is configured.
	DefaultFilename = "wikiflavor.sqlite"

	// InmemPath can be used for a throwaway in-memory database.
	InmemPath = ":memory:"
)

// SqlStore is the embedded metadata store backing the flavor registry.
//
// sqlite allows multiple readers but only a single writer at a time. Mu is
// held read for queries and write for any statement that mutates, so that
// writes never fail with a busy error.
type SqlStore struct {
	Mu   sync.RWMutex
	DB   *sqlx.DB
	log  *zap.Logger
	path string
}

// NewSqlStore opens (creating if needed) the sqlite database at path.
func NewSqlStore(path string, log *zap.Logger) (*SqlStore, error) {
	s := &SqlStore{
		log:  log,
		path: path,
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// serialize access through the single connection; Mu does the real
	// coordination above it
	db.SetMaxOpenConns(1)
	s.DB = db

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("Resources opened", zap.String("path", path))
	return s, nil
}

// Close the connection to the sqlite database.
func (s *SqlStore) Close() error {
	return s.DB.Close()
}

// Flush deletes all records for all tables except the migrations table. Used
// by tests to reset the store between cases.
func (s *SqlStore) Flush(ctx context.Context) {
	tables, err := s.tableNames()
	if err != nil {
		s.log.Fatal("unable to flush sqlite", zap.Error(err))
	}

	for _, t := range tables {
		stmt := fmt.Sprintf("DELETE FROM %s", t)
		if err := s.execTrans(ctx, stmt); err != nil {
			s.log.Fatal("unable to flush sqlite", zap.Error(err))
		}
	}
	s.log.Debug("sqlite data flushed successfully")
}

func (s *SqlStore) execTrans(ctx context.Context, stmt string) error {
	// use a lock to prevent two potential simultaneous write operations to
	// the database, which would throw an error
	s.Mu.Lock()
	defer s.Mu.Unlock()

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *SqlStore) userVersion() (int, error) {
	var v int
	if err := s.DB.Get(&v, "PRAGMA user_version"); err != nil {
		return 0, &errors.Error{
			Code: errors.EInternal,
			Msg:  "unable to read metadata schema version",
			Err:  err,
		}
	}
	return v, nil
}

func (s *SqlStore) tableNames() ([]string, error) {
	var names []string
	err := s.DB.Select(&names, "SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, err
	}

	filtered := names[:0]
	for _, n := range names {
		if strings.HasPrefix(n, "sqlite_") {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered, nil
}
