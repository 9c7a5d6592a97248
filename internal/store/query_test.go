package store

import (
	"testing"

	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   *Query
		wantErr bool
	}{
		{"valid", From("invoices").Select("id").Where("status", OpEq, "paid").Window(6, 6), false},
		{"joined or group", From("invoices").InnerJoin("customers", "customer_id", "name").
			WhereAny("customers", Filter{Column: "name", Op: OpILike, Value: "%a%"}), false},
		{"no table", &Query{}, true},
		{"negative offset", From("invoices").Window(-6, 6), true},
		{"negative limit", From("invoices").Limit(-1), true},
		{"or group spans tables", &Query{Table: "invoices", Or: []Filter{
			{Table: "customers", Column: "name"},
			{Table: "revenue", Column: "month"},
		}}, true},
		{"filter on unjoined table", From("invoices").
			WhereAny("customers", Filter{Column: "name", Op: OpEq, Value: "x"}), true},
		{"in filter without string slice", From("invoices").Where("id", OpIn, "a,b"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ierr.IsSystem(err))
			assert.False(t, ierr.IsValidation(err))
		})
	}
}

func TestResultTotalCount(t *testing.T) {
	n := 13
	count, err := (&Result{Count: &n}).TotalCount()
	require.NoError(t, err)
	assert.Equal(t, 13, count)

	negative := -1
	for name, r := range map[string]*Result{
		"nil result":     nil,
		"no count":       {},
		"negative count": {Count: &negative},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := r.TotalCount()
			require.Error(t, err)
			assert.True(t, ierr.IsSystem(err))
		})
	}
}

func TestResultDecode(t *testing.T) {
	type row struct {
		ID     string `mapstructure:"id"`
		Amount int64  `mapstructure:"amount"`
	}

	var rows []row
	r := &Result{Rows: []Row{{"id": "a", "amount": "4250"}}}
	require.NoError(t, r.Decode(&rows))
	assert.Equal(t, []row{{ID: "a", Amount: 4250}}, rows)

	var empty []row
	require.NoError(t, (*Result)(nil).Decode(&empty))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	bad := &Result{Rows: []Row{{"id": "a", "amount": map[string]any{"x": 1}}}}
	err := bad.Decode(&rows)
	require.Error(t, err)
	assert.True(t, ierr.IsSystem(err))
}
