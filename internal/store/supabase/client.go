package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/flexprice/invoice-dashboard/internal/config"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/httpclient"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/store"
	jsoniter "github.com/json-iterator/go"
	supa "github.com/nedpals/supabase-go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is the store.Client of a hosted Supabase project.
//
// Writes go through the supabase-go query builder. Reads are sent as raw
// PostgREST requests because they need filters on embedded resources and
// exact counts from the Content-Range header, which the builder does not
// expose.
type Client struct {
	baseURL string
	key     string
	db      *supa.Client
	http    httpclient.Client
	logger  *logger.Logger
}

var _ store.Client = (*Client)(nil)

// NewClient creates the Supabase client from config. It fails when the
// project URL or key is missing.
func NewClient(cfg *config.Configuration, http httpclient.Client, logger *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(cfg.Supabase.URL, "/")
	if baseURL == "" || cfg.Supabase.Key == "" {
		return nil, ierr.NewError("missing Supabase URL or key").
			WithHint("Set SUPABASE_URL and SUPABASE_ANON_KEY").
			Mark(ierr.ErrSystem)
	}

	db := supa.CreateClient(baseURL, cfg.Supabase.Key)
	if db == nil {
		return nil, ierr.NewError("failed to create Supabase client").
			Mark(ierr.ErrSystem)
	}

	return &Client{
		baseURL: baseURL,
		key:     cfg.Supabase.Key,
		db:      db,
		http:    http,
		logger:  logger,
	}, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"apikey":        c.key,
		"Authorization": "Bearer " + c.key,
		"Accept":        "application/json",
	}
}

func (c *Client) Select(ctx context.Context, q *store.Query) (*store.Result, error) {
	if err := q.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid query").
			Mark(ierr.ErrSystem)
	}

	req := &httpclient.Request{
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("%s%s/%s?%s", c.baseURL, restPath, q.Table, encodeQuery(q).Encode()),
		Headers: c.headers(),
	}
	if q.Count {
		req.Headers["Prefer"] = "count=exact"
	}
	if q.CountOnly {
		req.Method = http.MethodHead
	}

	resp, err := c.http.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &store.Result{Rows: []store.Row{}}
	if !q.CountOnly && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &result.Rows); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Unexpected response from the database").
				Mark(ierr.ErrHTTPClient)
		}
	}

	if q.Count {
		total, err := parseContentRange(resp.Header("Content-Range"))
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Unexpected response from the database").
				Mark(ierr.ErrHTTPClient)
		}
		result.Count = &total
	}

	return result, nil
}

func (c *Client) Insert(_ context.Context, table string, record store.Record) error {
	var rows []store.Row
	if err := c.db.DB.From(table).Insert(record).Execute(&rows); err != nil {
		return c.writeError("insert", table, err)
	}
	return nil
}

func (c *Client) Update(_ context.Context, table string, m store.Match, record store.Record) error {
	var rows []store.Row
	err := c.db.DB.From(table).
		Update(record).
		Eq(m.Column, fmt.Sprint(m.Value)).
		Execute(&rows)
	if err != nil {
		return c.writeError("update", table, err)
	}
	return nil
}

func (c *Client) Delete(_ context.Context, table string, m store.Match) (int, error) {
	var rows []store.Row
	err := c.db.DB.From(table).
		Delete().
		Eq(m.Column, fmt.Sprint(m.Value)).
		Execute(&rows)
	if err != nil {
		return 0, c.writeError("delete", table, err)
	}
	return len(rows), nil
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodHead,
		URL:     c.baseURL + restPath + "/",
		Headers: c.headers(),
	})
	return err
}

func (c *Client) writeError(op, table string, err error) error {
	return ierr.WithError(err).
		WithHintf("Failed to %s %s", op, table).
		WithReportableDetails(map[string]any{
			"table": table,
		}).
		Mark(ierr.ErrHTTPClient)
}
