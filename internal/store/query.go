package store

import (
	"fmt"
	"strings"

	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
)

// Operator is a comparison applied by a Filter
type Operator string

const (
	OpEq    Operator = "eq"
	OpILike Operator = "ilike"
	OpIn    Operator = "in"
)

// Filter compares one column against a value. Table is empty for the
// queried table, or the name of the joined table.
type Filter struct {
	Table  string
	Column string
	Op     Operator
	Value  any
}

// Join embeds columns of a related table, matched on
// Table.ForeignKey = <queried table>.LocalKey. Joined columns are
// flattened into each row and must not collide with selected columns.
type Join struct {
	Table      string
	LocalKey   string
	ForeignKey string
	Columns    []string
	Inner      bool
}

// Order sorts by one column of the queried table
type Order struct {
	Column string
	Desc   bool
}

// Range selects rows [Offset, Offset+Limit)
type Range struct {
	Offset int
	Limit  int
}

// Query is a backend-neutral read. Filters are ANDed together; the Or
// group, when present, is ORed internally and ANDed with Filters. All
// members of the Or group must target the same table.
type Query struct {
	Table     string
	Columns   []string
	Join      *Join
	Filters   []Filter
	Or        []Filter
	Orders    []Order
	Range     *Range
	Count     bool
	CountOnly bool
}

// From starts a query on table
func From(table string) *Query {
	return &Query{Table: table}
}

// Select sets the columns of the queried table; none means all
func (q *Query) Select(columns ...string) *Query {
	q.Columns = columns
	return q
}

// InnerJoin embeds columns of table, excluding rows without a match
func (q *Query) InnerJoin(table, localKey string, columns ...string) *Query {
	q.Join = &Join{
		Table:      table,
		LocalKey:   localKey,
		ForeignKey: "id",
		Columns:    columns,
		Inner:      true,
	}
	return q
}

// Where adds an ANDed filter on the queried table
func (q *Query) Where(column string, op Operator, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: op, Value: value})
	return q
}

// WhereAny adds an OR group on the given table
func (q *Query) WhereAny(table string, filters ...Filter) *Query {
	for _, f := range filters {
		f.Table = table
		q.Or = append(q.Or, f)
	}
	return q
}

// OrderBy appends a sort key
func (q *Query) OrderBy(column string, desc bool) *Query {
	q.Orders = append(q.Orders, Order{Column: column, Desc: desc})
	return q
}

// Limit restricts the result to the first n rows
func (q *Query) Limit(n int) *Query {
	return q.Window(0, n)
}

// Window restricts the result to limit rows starting at offset
func (q *Query) Window(offset, limit int) *Query {
	q.Range = &Range{Offset: offset, Limit: limit}
	return q
}

// WithCount asks for the exact number of matching rows
func (q *Query) WithCount() *Query {
	q.Count = true
	return q
}

// OnlyCount asks for the exact number of matching rows and no rows
func (q *Query) OnlyCount() *Query {
	q.Count = true
	q.CountOnly = true
	return q
}

// Validate checks the query is expressible by every backend
func (q *Query) Validate() error {
	if q.Table == "" {
		return ierr.NewError("query has no table").
			Mark(ierr.ErrSystem)
	}
	if q.Range != nil && (q.Range.Offset < 0 || q.Range.Limit < 0) {
		return ierr.NewError("invalid query range").
			WithHintf("offset=%d limit=%d", q.Range.Offset, q.Range.Limit).
			Mark(ierr.ErrSystem)
	}
	if len(q.Or) > 0 {
		table := q.Or[0].Table
		for _, f := range q.Or[1:] {
			if f.Table != table {
				return ierr.NewError("or group spans tables").
					WithHintf("tables %q and %q", table, f.Table).
					Mark(ierr.ErrSystem)
			}
		}
	}
	for _, f := range append(append([]Filter{}, q.Filters...), q.Or...) {
		if f.Table != "" && (q.Join == nil || f.Table != q.Join.Table) {
			return ierr.NewError("filter references a table that is not joined").
				WithHintf("filter on %s.%s", f.Table, f.Column).
				Mark(ierr.ErrSystem)
		}
		if f.Op == OpIn {
			if _, ok := f.Value.([]string); !ok {
				return ierr.NewError("in filter needs a []string value").
					WithHintf("filter on %s", f.Column).
					Mark(ierr.ErrSystem)
			}
		}
	}
	return nil
}

// Contains builds the ILIKE pattern for a case-insensitive substring match
func Contains(s string) string {
	return "%" + s + "%"
}

// String renders the query for logs
func (q *Query) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "from=%s select=%s", q.Table, strings.Join(q.Columns, ","))
	if q.Join != nil {
		fmt.Fprintf(&b, " join=%s(%s)", q.Join.Table, strings.Join(q.Join.Columns, ","))
	}
	for _, f := range q.Filters {
		fmt.Fprintf(&b, " where=%s.%s", f.Column, f.Op)
	}
	for _, f := range q.Or {
		fmt.Fprintf(&b, " or=%s.%s.%s", f.Table, f.Column, f.Op)
	}
	for _, o := range q.Orders {
		fmt.Fprintf(&b, " order=%s desc=%t", o.Column, o.Desc)
	}
	if q.Range != nil {
		fmt.Fprintf(&b, " offset=%d limit=%d", q.Range.Offset, q.Range.Limit)
	}
	if q.Count {
		b.WriteString(" count=exact")
	}
	return b.String()
}
