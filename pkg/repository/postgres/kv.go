package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type kvStore struct {
	pool *pgxpool.Pool
}

func (s *kvStore) Get(ctx context.Context, userID, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv WHERE user_id = $1 AND key = $2`, userID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, goerr.Wrap(err, "failed to get value", goerr.V("user_id", userID), goerr.V("key", key))
	}
	return value, true, nil
}

func (s *kvStore) Set(ctx context.Context, userID, key, value string) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO kv (user_id, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value
	`, userID, key, value); err != nil {
		return goerr.Wrap(err, "failed to set value", goerr.V("user_id", userID), goerr.V("key", key))
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, userID, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM kv WHERE user_id = $1 AND key = $2`, userID, key); err != nil {
		return goerr.Wrap(err, "failed to delete value", goerr.V("user_id", userID), goerr.V("key", key))
	}
	return nil
}
