package storage

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/luissevero/ignitegofinances/internal/customerr"
)

const kvTable = "kv_items"

// sqlStorage keeps every key in one row and uses the version column as an
// optimistic concurrency token.
type sqlStorage struct {
	db      *sql.DB
	sb      sq.StatementBuilderType
	retries int
}

func newSQLStorage(db *sql.DB, placeholder sq.PlaceholderFormat, retries int) *sqlStorage {
	if retries <= 0 {
		retries = 1
	}
	return &sqlStorage{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(placeholder),
		retries: retries,
	}
}

func (s *sqlStorage) Close() error {
	return s.db.Close()
}

func (s *sqlStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, _, found, err := s.get(ctx, key)
	return value, found, err
}

func (s *sqlStorage) get(ctx context.Context, key string) (value string, version int64, found bool, err error) {
	query := s.sb.Select("item_value", "version").
		From(kvTable).
		Where(sq.Eq{"item_key": key})

	err = query.RunWith(s.db).QueryRowContext(ctx).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, errors.Wrap(err, "get item")
	}
	return value, version, true, nil
}

func (s *sqlStorage) Set(ctx context.Context, key, value string) error {
	query := s.sb.Insert(kvTable).
		Columns("item_key", "item_value", "version").
		Values(key, value, 1).
		Suffix("ON CONFLICT (item_key) DO UPDATE SET item_value = excluded.item_value, " +
			"version = " + kvTable + ".version + 1, updated_at = CURRENT_TIMESTAMP")

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "set item")
}

func (s *sqlStorage) Remove(ctx context.Context, key string) error {
	query := s.sb.Delete(kvTable).Where(sq.Eq{"item_key": key})

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "remove item")
}

func (s *sqlStorage) Update(ctx context.Context, key string, fn UpdateFunc) error {
	for attempt := 0; attempt < s.retries; attempt++ {
		old, version, found, err := s.get(ctx, key)
		if err != nil {
			return err
		}

		value, err := fn(old, found)
		if err != nil {
			return err
		}

		var stored bool
		if found {
			stored, err = s.compareAndSwap(ctx, key, value, version)
		} else {
			stored, err = s.insertIfAbsent(ctx, key, value)
		}
		if err != nil {
			return err
		}
		if stored {
			return nil
		}
	}
	return errors.Wrapf(customerr.ErrConflict, "update %s", key)
}

func (s *sqlStorage) insertIfAbsent(ctx context.Context, key, value string) (bool, error) {
	query := s.sb.Insert(kvTable).
		Columns("item_key", "item_value", "version").
		Values(key, value, 1).
		Suffix("ON CONFLICT (item_key) DO NOTHING")

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return false, errors.Wrap(err, "insert item")
	}
	return affectedOne(res)
}

func (s *sqlStorage) compareAndSwap(ctx context.Context, key, value string, version int64) (bool, error) {
	query := s.sb.Update(kvTable).
		Set("item_value", value).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"item_key": key, "version": version})

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return false, errors.Wrap(err, "update item")
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return n == 1, nil
}
