package supabase

import (
	"testing"

	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query *store.Query
		want  map[string]string
	}{
		{
			name:  "all columns",
			query: store.From("revenue"),
			want:  map[string]string{"select": "*"},
		},
		{
			name: "latest invoices",
			query: store.From("invoices").
				Select("amount", "id").
				InnerJoin("customers", "customer_id", "name", "image_url", "email").
				OrderBy("date", true).
				Limit(5),
			want: map[string]string{
				"select": "amount,id,...customers!inner(name,image_url,email)",
				"order":  "date.desc",
				"offset": "0",
				"limit":  "5",
			},
		},
		{
			name: "filtered page",
			query: store.From("invoices").
				Select("id", "amount").
				InnerJoin("customers", "customer_id", "name", "email").
				WhereAny("customers",
					store.Filter{Column: "name", Op: store.OpILike, Value: store.Contains("lee")},
					store.Filter{Column: "email", Op: store.OpILike, Value: store.Contains("lee")},
				).
				OrderBy("date", true).
				Window(6, 6),
			want: map[string]string{
				"select":       "id,amount,...customers!inner(name,email)",
				"customers.or": "(name.ilike.*lee*,email.ilike.*lee*)",
				"order":        "date.desc",
				"offset":       "6",
				"limit":        "6",
			},
		},
		{
			name: "search with reserved characters",
			query: store.From("invoices").
				InnerJoin("customers", "customer_id").
				WhereAny("customers",
					store.Filter{Column: "email", Op: store.OpILike, Value: store.Contains("a.b@x")},
				),
			want: map[string]string{
				"select":       "*,...customers!inner(*)",
				"customers.or": `(email.ilike."*a.b@x*")`,
			},
		},
		{
			name: "equality and in filters",
			query: store.From("invoices").
				Select("customer_id", "amount").
				Where("id", store.OpEq, "inv_1").
				Where("customer_id", store.OpIn, []string{"c1", "c 2"}),
			want: map[string]string{
				"select":      "customer_id,amount",
				"id":          "eq.inv_1",
				"customer_id": `in.(c1,"c 2")`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeQuery(tt.query)
			assert.Len(t, got, len(tt.want))
			for k, v := range tt.want {
				assert.Equal(t, v, got.Get(k), "param %s", k)
			}
		})
	}
}

func TestParseContentRange(t *testing.T) {
	n, err := parseContentRange("0-5/13")
	require.NoError(t, err)
	assert.Equal(t, 13, n)

	n, err = parseContentRange("*/0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, header := range []string{"", "0-5", "0-5/*", "0-5/abc", "0-5/-1"} {
		_, err := parseContentRange(header)
		require.Error(t, err, header)
		assert.True(t, ierr.IsHTTPClient(err), header)
	}
}
