package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/upsert"
	qb "github.com/riskibarqy/fpl-league-sync/internal/platform/querybuilder"
)

// upsertChunkSize keeps multi-row statements well below the 65535 bind
// parameter limit for the widest table.
const upsertChunkSize = 500

const uniqueViolationCode = pq.ErrorCode("23505")

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolationCode
}

// insertResult classifies a single-row insert error.
func insertResult(err error) upsert.Result {
	switch {
	case err == nil:
		return upsert.Created()
	case isUniqueViolation(err):
		return upsert.AlreadyExists(err)
	default:
		return upsert.Failed(err)
	}
}

// dedupeLast drops earlier items that share a key with a later one while
// keeping first-seen order. A single ON CONFLICT DO UPDATE statement cannot
// touch the same row twice.
func dedupeLast[K comparable, T any](items []T, key func(T) K) []T {
	if len(items) < 2 {
		return items
	}

	position := make(map[K]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if idx, ok := position[k]; ok {
			out[idx] = item
			continue
		}
		position[k] = len(out)
		out = append(out, item)
	}
	return out
}

type statement struct {
	query string
	args  []any
}

// upsertStatements renders models as multi-row upserts of at most
// upsertChunkSize rows each.
func upsertStatements(table string, models []any, suffix string) ([]statement, error) {
	out := make([]statement, 0, (len(models)+upsertChunkSize-1)/upsertChunkSize)
	for start := 0; start < len(models); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(models))
		query, args, err := qb.InsertModels(table, models[start:end], suffix)
		if err != nil {
			return nil, fmt.Errorf("build upsert %s rows %d-%d: %w", table, start, end, err)
		}
		out = append(out, statement{query: query, args: args})
	}
	return out, nil
}

// execChunkedUpsert writes models in chunks inside one transaction.
func execChunkedUpsert(ctx context.Context, db *sqlx.DB, table string, models []any, suffix string) error {
	if len(models) == 0 {
		return nil
	}
	statements, err := upsertStatements(table, models, suffix)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			return fmt.Errorf("upsert %s chunk %d: %w", table, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert %s tx: %w", table, err)
	}
	return nil
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	out := v.String
	return &out
}

func nullFloat64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	out := v.Float64
	return &out
}
