package cache

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/invoice-dashboard/internal/config"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/stretchr/testify/assert"
)

func newCache(enabled bool) *InMemoryCache {
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = enabled
	cfg.Cache.TTL = time.Minute
	return NewInMemoryCache(cfg, logger.NewNoopLogger())
}

func TestInvalidateViewRemovesOnlyThatView(t *testing.T) {
	ctx := context.Background()
	c := newCache(true)

	c.Set(ctx, ViewKey(types.ViewInvoices, "lee", 1), "page", 0)
	c.Set(ctx, ViewKey(types.ViewInvoices, "pages", ""), 3, 0)
	c.Set(ctx, ViewKey("/dashboard/customers"), "customers", 0)

	c.InvalidateView(ctx, types.ViewInvoices)

	_, ok := c.Get(ctx, ViewKey(types.ViewInvoices, "lee", 1))
	assert.False(t, ok)
	_, ok = c.Get(ctx, ViewKey(types.ViewInvoices, "pages", ""))
	assert.False(t, ok)
	v, ok := c.Get(ctx, ViewKey("/dashboard/customers"))
	assert.True(t, ok)
	assert.Equal(t, "customers", v)
}

func TestDisabledCacheMisses(t *testing.T) {
	ctx := context.Background()
	c := newCache(false)

	c.Set(ctx, "k", "v", 0)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.InvalidateView(ctx, types.ViewInvoices)
}

func TestViewKey(t *testing.T) {
	assert.Equal(t, "view:v1:/dashboard/invoices:lee:2", ViewKey(types.ViewInvoices, "lee", 2))
	assert.Equal(t, "view:v1:/dashboard", ViewKey(types.ViewDashboard))
}
