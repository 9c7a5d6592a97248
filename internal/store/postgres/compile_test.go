package postgres

import (
	"testing"
	"time"

	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCompileSelect(t *testing.T) {
	tests := []struct {
		name  string
		query *store.Query
		sql   string
		args  []interface{}
	}{
		{
			name:  "whole table",
			query: store.From("revenue"),
			sql:   `SELECT "revenue".* FROM "revenue"`,
		},
		{
			name: "latest invoices",
			query: store.From("invoices").
				Select("amount", "id").
				InnerJoin("customers", "customer_id", "name", "image_url", "email").
				OrderBy("date", true).
				Limit(5),
			sql: `SELECT "invoices"."amount", "invoices"."id", "customers"."name", "customers"."image_url", "customers"."email"` +
				` FROM "invoices" INNER JOIN "customers" ON "customers"."id" = "invoices"."customer_id"` +
				` ORDER BY "invoices"."date" DESC LIMIT $1 OFFSET $2`,
			args: []interface{}{5, 0},
		},
		{
			name: "filtered page",
			query: store.From("invoices").
				Select("id").
				InnerJoin("customers", "customer_id", "name").
				WhereAny("customers",
					store.Filter{Column: "name", Op: store.OpILike, Value: "%lee%"},
					store.Filter{Column: "email", Op: store.OpILike, Value: "%lee%"},
				).
				OrderBy("date", true).
				Window(12, 6),
			sql: `SELECT "invoices"."id", "customers"."name"` +
				` FROM "invoices" INNER JOIN "customers" ON "customers"."id" = "invoices"."customer_id"` +
				` WHERE ("customers"."name" ILIKE $1 OR "customers"."email" ILIKE $2)` +
				` ORDER BY "invoices"."date" DESC LIMIT $3 OFFSET $4`,
			args: []interface{}{"%lee%", "%lee%", 6, 12},
		},
		{
			name: "equality and in",
			query: store.From("invoices").
				Select("customer_id").
				Where("status", store.OpEq, "paid").
				Where("customer_id", store.OpIn, []string{"a", "b"}),
			sql: `SELECT "invoices"."customer_id" FROM "invoices"` +
				` WHERE "invoices"."status" = $1 AND "invoices"."customer_id"::text = ANY($2)`,
			args: []interface{}{"paid", pq.Array([]string{"a", "b"})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := compileSelect(tt.query)
			assert.Equal(t, tt.sql, stmt.sql)
			assert.Equal(t, tt.args, stmt.args)
		})
	}
}

func TestCompileCountIgnoresWindow(t *testing.T) {
	q := store.From("invoices").
		InnerJoin("customers", "customer_id", "name").
		WhereAny("customers", store.Filter{Column: "name", Op: store.OpILike, Value: "%x%"}).
		OrderBy("date", true).
		Window(6, 6).
		WithCount()

	stmt := compileCount(q)
	assert.Equal(t, `SELECT COUNT(*) FROM "invoices" INNER JOIN "customers" ON "customers"."id" = "invoices"."customer_id"`+
		` WHERE ("customers"."name" ILIKE $1)`, stmt.sql)
	assert.Equal(t, []interface{}{"%x%"}, stmt.args)
}

func TestCompileWrites(t *testing.T) {
	record := store.Record{
		"customer_id": "c1",
		"amount":      int64(4250),
		"status":      "pending",
	}

	insert := compileInsert("invoices", record)
	assert.Equal(t, `INSERT INTO "invoices" ("amount", "customer_id", "status") VALUES ($1, $2, $3)`, insert.sql)
	assert.Equal(t, []interface{}{int64(4250), "c1", "pending"}, insert.args)

	update := compileUpdate("invoices", store.MatchID("inv_1"), record)
	assert.Equal(t, `UPDATE "invoices" SET "amount" = $1, "customer_id" = $2, "status" = $3 WHERE "id" = $4`, update.sql)
	assert.Equal(t, []interface{}{int64(4250), "c1", "pending", "inv_1"}, update.args)

	del := compileDelete("invoices", store.MatchID("inv_1"))
	assert.Equal(t, `DELETE FROM "invoices" WHERE "id" = $1`, del.sql)
	assert.Equal(t, []interface{}{"inv_1"}, del.args)
}

func TestNormalizeRow(t *testing.T) {
	row := normalizeRow(map[string]interface{}{
		"id":     []byte("3958dc9e"),
		"date":   time.Date(2022, 12, 6, 0, 0, 0, 0, time.UTC),
		"amount": int64(15795),
		"note":   nil,
	})

	assert.Equal(t, "3958dc9e", row["id"])
	assert.Equal(t, "2022-12-06", row["date"])
	assert.Equal(t, int64(15795), row["amount"])
	assert.Nil(t, row["note"])
}
