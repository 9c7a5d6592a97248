package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flexprice/invoice-dashboard/internal/config"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/httpclient"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/stretchr/testify/suite"
)

type ClientSuite struct {
	suite.Suite
	ctx     context.Context
	server  *httptest.Server
	handler http.HandlerFunc
	last    *http.Request
	client  *Client
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.last = nil
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.last = r
		s.handler(w, r)
	}))

	cfg := config.GetDefaultConfig()
	cfg.Supabase.URL = s.server.URL + "/"
	cfg.Supabase.Key = "anon-key"

	client, err := NewClient(cfg, httpclient.NewClient(httpclient.ClientConfig{Timeout: 5 * time.Second}), logger.NewNoopLogger())
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestNewClientRequiresCredentials() {
	cfg := config.GetDefaultConfig()
	cfg.Supabase.URL = ""
	cfg.Supabase.Key = ""

	_, err := NewClient(cfg, httpclient.NewDefaultClient(), logger.NewNoopLogger())
	s.Error(err)
}

func (s *ClientSuite) TestSelectDecodesRows() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"inv_1","amount":15795,"name":"Lee Robinson"}]`))
	}

	res, err := s.client.Select(s.ctx, store.From("invoices").
		Select("id", "amount").
		InnerJoin("customers", "customer_id", "name").
		OrderBy("date", true).
		Limit(5))
	s.Require().NoError(err)
	s.Require().Len(res.Rows, 1)
	s.Equal("inv_1", res.Rows[0]["id"])
	s.Equal("Lee Robinson", res.Rows[0]["name"])
	s.Nil(res.Count)

	s.Equal(http.MethodGet, s.last.Method)
	s.Equal("/rest/v1/invoices", s.last.URL.Path)
	s.Equal("anon-key", s.last.Header.Get("apikey"))
	s.Equal("Bearer anon-key", s.last.Header.Get("Authorization"))
	s.Empty(s.last.Header.Get("Prefer"))
	s.Equal("date.desc", s.last.URL.Query().Get("order"))
}

func (s *ClientSuite) TestSelectCountOnly() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "*/13")
		w.WriteHeader(http.StatusOK)
	}

	res, err := s.client.Select(s.ctx, store.From("invoices").OnlyCount())
	s.Require().NoError(err)
	total, err := res.TotalCount()
	s.Require().NoError(err)
	s.Equal(13, total)
	s.Empty(res.Rows)

	s.Equal(http.MethodHead, s.last.Method)
	s.Equal("count=exact", s.last.Header.Get("Prefer"))
}

func (s *ClientSuite) TestSelectMissingCount() {
	res, err := s.client.Select(s.ctx, store.From("invoices").OnlyCount())
	s.Error(err)
	s.Nil(res)
}

func (s *ClientSuite) TestSelectRemoteFailure() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}

	_, err := s.client.Select(s.ctx, store.From("revenue"))
	s.Error(err)
	s.True(ierr.IsHTTPClient(err))
}

func (s *ClientSuite) TestSelectInvalidQuery() {
	q := store.From("invoices").WhereAny("customers",
		store.Filter{Column: "name", Op: store.OpILike, Value: "%x%"},
	)

	_, err := s.client.Select(s.ctx, q)
	s.Error(err)
	s.Nil(s.last)
}

func (s *ClientSuite) TestSelectMalformedBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}

	_, err := s.client.Select(s.ctx, store.From("revenue"))
	s.Error(err)
}

func (s *ClientSuite) TestPing() {
	s.NoError(s.client.Ping(s.ctx))
	s.Equal("/rest/v1/", s.last.URL.Path)
}
