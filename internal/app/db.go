package app

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fpl-league-sync/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	dbPingTimeout = 5 * time.Second

	// maxTracedQueryLength caps db.statement span attributes.
	maxTracedQueryLength = 512

	preparedBinaryParam = "disable_prepared_binary_result"
)

// OpenDB opens an instrumented postgres pool and verifies it answers.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := DatabaseURL(cfg)

	opts := []otelsql.Option{
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	otelsql.ReportDBStatsMetrics(db.DB, opts...)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// DatabaseURL is the DSN OpenDB dials, for tools that bypass the pool.
func DatabaseURL(cfg config.Config) string {
	if !cfg.DBDisablePreparedBinary {
		return cfg.DBURL
	}
	return withQueryDefault(cfg.DBURL, preparedBinaryParam, "yes")
}

// withQueryDefault sets key on a URL-style DSN unless the DSN already
// carries it. Keyword DSNs are returned unchanged.
func withQueryDefault(raw, key, value string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Has(key) {
		return raw
	}
	query.Set(key, value)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL reads the database name from either a postgres:// URL or a
// "key=value" keyword DSN.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}

	for _, token := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// formatDBQueryForTrace collapses whitespace and folds the repeated row
// groups of chunked upserts, which would otherwise fill the attribute with
// placeholders.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	normalized = foldValueRows(normalized)
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

func foldValueRows(query string) string {
	head, rest, ok := strings.Cut(query, " VALUES (")
	if !ok {
		return query
	}
	firstRow, tail, ok := strings.Cut(rest, ")")
	if !ok {
		return query
	}

	rows := 1
	for strings.HasPrefix(tail, ", (") {
		_, next, found := strings.Cut(tail, ")")
		if !found {
			break
		}
		tail = next
		rows++
	}
	if rows == 1 {
		return query
	}
	return head + " VALUES (" + firstRow + ") /* x" + strconv.Itoa(rows) + " rows */" + tail
}
