package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/lib/pq"
)

// statement is a compiled SQL string with its positional arguments
type statement struct {
	sql  string
	args []interface{}
}

// compiler renders store queries as PostgreSQL with $n placeholders
type compiler struct {
	args []interface{}
}

func (c *compiler) bind(v interface{}) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

func ident(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(quoted, ".")
}

// compileSelect builds the row query of q
func compileSelect(q *store.Query) statement {
	c := &compiler{}
	var b strings.Builder

	b.WriteString("SELECT ")
	b.WriteString(c.columns(q))
	b.WriteString(c.from(q))
	b.WriteString(c.where(q))

	if len(q.Orders) > 0 {
		orders := make([]string, len(q.Orders))
		for i, o := range q.Orders {
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			orders[i] = ident(q.Table, o.Column) + " " + dir
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(orders, ", "))
	}

	if q.Range != nil {
		fmt.Fprintf(&b, " LIMIT %s OFFSET %s", c.bind(q.Range.Limit), c.bind(q.Range.Offset))
	}

	return statement{sql: b.String(), args: c.args}
}

// compileCount builds the exact count of rows matching q, ignoring order
// and range
func compileCount(q *store.Query) statement {
	c := &compiler{}
	sql := "SELECT COUNT(*)" + c.from(q) + c.where(q)
	return statement{sql: sql, args: c.args}
}

func (c *compiler) columns(q *store.Query) string {
	var cols []string
	if len(q.Columns) == 0 {
		cols = append(cols, pq.QuoteIdentifier(q.Table)+".*")
	}
	for _, col := range q.Columns {
		cols = append(cols, ident(q.Table, col))
	}
	if q.Join != nil {
		if len(q.Join.Columns) == 0 {
			cols = append(cols, pq.QuoteIdentifier(q.Join.Table)+".*")
		}
		for _, col := range q.Join.Columns {
			cols = append(cols, ident(q.Join.Table, col))
		}
	}
	return strings.Join(cols, ", ")
}

func (c *compiler) from(q *store.Query) string {
	sql := " FROM " + pq.QuoteIdentifier(q.Table)
	if q.Join == nil {
		return sql
	}
	kind := " LEFT JOIN "
	if q.Join.Inner {
		kind = " INNER JOIN "
	}
	return sql + kind + pq.QuoteIdentifier(q.Join.Table) +
		" ON " + ident(q.Join.Table, q.Join.ForeignKey) + " = " + ident(q.Table, q.Join.LocalKey)
}

func (c *compiler) where(q *store.Query) string {
	var conds []string
	for _, f := range q.Filters {
		conds = append(conds, c.condition(q, f))
	}
	if len(q.Or) > 0 {
		alts := make([]string, len(q.Or))
		for i, f := range q.Or {
			alts[i] = c.condition(q, f)
		}
		conds = append(conds, "("+strings.Join(alts, " OR ")+")")
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (c *compiler) condition(q *store.Query, f store.Filter) string {
	table := f.Table
	if table == "" {
		table = q.Table
	}
	col := ident(table, f.Column)

	switch f.Op {
	case store.OpILike:
		return col + " ILIKE " + c.bind(f.Value)
	case store.OpIn:
		values, _ := f.Value.([]string)
		return col + "::text = ANY(" + c.bind(pq.Array(values)) + ")"
	default:
		return col + " = " + c.bind(f.Value)
	}
}

// compileInsert builds an INSERT of record with columns in sorted order
func compileInsert(table string, record store.Record) statement {
	c := &compiler{}
	cols := sortedKeys(record)
	names := make([]string, len(cols))
	holders := make([]string, len(cols))
	for i, col := range cols {
		names[i] = pq.QuoteIdentifier(col)
		holders[i] = c.bind(record[col])
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table), strings.Join(names, ", "), strings.Join(holders, ", "))
	return statement{sql: sql, args: c.args}
}

// compileUpdate builds an UPDATE of the rows matching m
func compileUpdate(table string, m store.Match, record store.Record) statement {
	c := &compiler{}
	cols := sortedKeys(record)
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = pq.QuoteIdentifier(col) + " = " + c.bind(record[col])
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		pq.QuoteIdentifier(table), strings.Join(sets, ", "), pq.QuoteIdentifier(m.Column), c.bind(m.Value))
	return statement{sql: sql, args: c.args}
}

// compileDelete builds a DELETE of the rows matching m
func compileDelete(table string, m store.Match) statement {
	c := &compiler{}
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(m.Column), c.bind(m.Value))
	return statement{sql: sql, args: c.args}
}

func sortedKeys(record store.Record) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
