package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	// sqlite driver
	_ "modernc.org/sqlite"
)

const sqliteBusyPragma = "?_pragma=busy_timeout(5000)"

type sqliteConfig interface {
	Path() string
}

// SQLiteStorage is the on-device store: a single file next to the binary.
type SQLiteStorage struct {
	*sqlStorage
}

func NewSQLiteStorage(config sqliteConfig, retries int) (*SQLiteStorage, error) {
	path := config.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create db directory")
	}

	if err := runSQLiteMigrations(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+sqliteBusyPragma)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}
	// one writer at a time, version checks cover the rest
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite database")
	}
	return &SQLiteStorage{newSQLStorage(db, sq.Question, retries)}, nil
}
