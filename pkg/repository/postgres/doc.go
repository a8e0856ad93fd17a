package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gametheory-pro/gtpro/pkg/domain/interfaces"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

// querier is satisfied by both the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode document")
	}
	return raw, nil
}

// limitArg maps a non-positive limit to NULL, which LIMIT treats as no limit
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

// queryDoc reads the single doc column of one row
func queryDoc[T any](ctx context.Context, q querier, sql string, args ...any) (*T, error) {
	var raw []byte
	if err := q.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "record not found")
		}
		return nil, goerr.Wrap(err, "failed to query record")
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, goerr.Wrap(err, "failed to decode record")
	}
	return &v, nil
}

// queryDocs reads the doc column of every row
func queryDocs[T any](ctx context.Context, q querier, sql string, args ...any) ([]*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query records")
	}
	defer rows.Close()

	result := []*T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, goerr.Wrap(err, "failed to scan record")
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode record")
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate records")
	}
	return result, nil
}

// insertAndNotify runs insert and announces id on channel in one transaction
func insertAndNotify(ctx context.Context, pool *pgxpool.Pool, channel, id, sql string, args ...any) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return goerr.Wrap(err, "failed to insert record")
		}
		if _, err := tx.Exec(ctx, "SELECT pg_notify($1, $2)", channel, id); err != nil {
			return goerr.Wrap(err, "failed to notify", goerr.V("channel", channel))
		}
		return nil
	})
}

// insertIfAbsentAndNotify runs an insert that may skip on conflict and
// announces id only when a row was inserted
func insertIfAbsentAndNotify(ctx context.Context, pool *pgxpool.Pool, channel, id, sql string, args ...any) (bool, error) {
	var inserted bool
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return goerr.Wrap(err, "failed to insert record")
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, "SELECT pg_notify($1, $2)", channel, id); err != nil {
			return goerr.Wrap(err, "failed to notify", goerr.V("channel", channel))
		}
		inserted = true
		return nil
	})
	return inserted, err
}

// listen delivers every id announced on channel to fetch on a dedicated
// connection until the returned function is called or ctx ends
func listen(ctx context.Context, pool *pgxpool.Pool, channel string, deliver func(ctx context.Context, id string)) (func(), error) {
	pc, err := pool.Acquire(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to acquire listener connection")
	}
	conn := pc.Hijack()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		_ = conn.Close(context.Background())
		return nil, goerr.Wrap(err, "failed to listen", goerr.V("channel", channel))
	}

	ctx, cancel := context.WithCancel(ctx)
	logger := logging.From(ctx)
	go func() {
		defer func() { _ = conn.Close(context.Background()) }()
		for {
			n, err := conn.WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("postgres subscription stopped", "channel", channel, "error", err.Error())
				}
				return
			}
			deliver(ctx, n.Payload)
		}
	}()

	return cancel, nil
}
