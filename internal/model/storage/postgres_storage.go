package storage

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

type postgresConfig interface {
	DSN() string
}

type PostgresStorage struct {
	*sqlStorage
}

func NewPostgresStorage(config postgresConfig, retries int) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = runPostgresMigrations(config.DSN()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStorage{newSQLStorage(db, sq.Dollar, retries)}, nil
}
