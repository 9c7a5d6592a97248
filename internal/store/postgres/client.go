package postgres

import (
	"context"
	"time"

	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/types"
)

// Client is the store.Client of a self-hosted PostgreSQL database with the
// dashboard schema
type Client struct {
	db *DB
	q  Querier
}

var _ store.Client = (*Client)(nil)

// NewClient creates a store client over db
func NewClient(db *DB) *Client {
	return &Client{db: db, q: db.Querier()}
}

func (c *Client) Select(ctx context.Context, q *store.Query) (*store.Result, error) {
	if err := q.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid query").
			Mark(ierr.ErrSystem)
	}

	result := &store.Result{Rows: []store.Row{}}

	if !q.CountOnly {
		stmt := compileSelect(q)
		rows, err := c.q.QueryxContext(ctx, stmt.sql, stmt.args...)
		if err != nil {
			return nil, dbError(err, q.Table)
		}
		defer rows.Close()

		for rows.Next() {
			row := map[string]interface{}{}
			if err := rows.MapScan(row); err != nil {
				return nil, dbError(err, q.Table)
			}
			result.Rows = append(result.Rows, normalizeRow(row))
		}
		if err := rows.Err(); err != nil {
			return nil, dbError(err, q.Table)
		}
	}

	if q.Count {
		stmt := compileCount(q)
		var total int
		if err := c.q.GetContext(ctx, &total, stmt.sql, stmt.args...); err != nil {
			return nil, dbError(err, q.Table)
		}
		result.Count = &total
	}

	return result, nil
}

func (c *Client) Insert(ctx context.Context, table string, record store.Record) error {
	stmt := compileInsert(table, record)
	if _, err := c.q.ExecContext(ctx, stmt.sql, stmt.args...); err != nil {
		return dbError(err, table)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, table string, m store.Match, record store.Record) error {
	stmt := compileUpdate(table, m, record)
	if _, err := c.q.ExecContext(ctx, stmt.sql, stmt.args...); err != nil {
		return dbError(err, table)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, table string, m store.Match) (int, error) {
	stmt := compileDelete(table, m)
	res, err := c.q.ExecContext(ctx, stmt.sql, stmt.args...)
	if err != nil {
		return 0, dbError(err, table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbError(err, table)
	}
	return int(n), nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return dbError(err, "")
	}
	return nil
}

// normalizeRow converts driver values into the JSON-like values the
// Supabase backend returns
func normalizeRow(row map[string]interface{}) store.Row {
	out := make(store.Row, len(row))
	for k, v := range row {
		switch val := v.(type) {
		case []byte:
			out[k] = string(val)
		case time.Time:
			out[k] = types.FormatDate(val)
		default:
			out[k] = val
		}
	}
	return out
}

func dbError(err error, table string) error {
	return ierr.WithError(err).
		WithHint("Database operation failed").
		WithReportableDetails(map[string]any{
			"table": table,
		}).
		Mark(ierr.ErrDatabase)
}
