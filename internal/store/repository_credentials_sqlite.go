package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-chat-client/internal/logger"
)

const credentialsTable = "credentials"

// psql is the statement builder for sqlite's "?" placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type sqliteCredentialRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteCredentialRepository returns a [CredentialRepository] backed by
// the migrated credentials table.
func NewSQLiteCredentialRepository(db *DB, log *logger.Logger) CredentialRepository {
	return &sqliteCredentialRepository{db: db, logger: log}
}

func (r *sqliteCredentialRepository) Put(ctx context.Context, key, value string) error {
	query, args, err := psql.Insert(credentialsTable).
		Columns("name", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "sqliteCredentialRepository.Put").
			Str("key", key).
			Msg("failed to upsert credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqliteCredentialRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := psql.Select("value").
		From(credentialsTable).
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrCredentialNotFound
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "sqliteCredentialRepository.Get").
			Str("key", key).
			Msg("failed to query credential")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (r *sqliteCredentialRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := psql.Delete(credentialsTable).
		Where(sq.Eq{"name": keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "sqliteCredentialRepository.Delete").
			Strs("keys", keys).
			Msg("failed to delete credentials")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqliteCredentialRepository) Close() error {
	return r.db.Close()
}
