package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/samber/lo"
)

// InMemoryStore implements store.Client over in-memory tables. It
// interprets queries the way the remote backends do: inner joins with
// flattened columns, case-insensitive substring ILIKE, OR groups, order,
// range and exact counts.
type InMemoryStore struct {
	mu       sync.RWMutex
	tables   map[string][]store.Row
	prefixes map[string]string
	queries  []*store.Query
	failures map[string]error
}

var _ store.Client = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		tables: make(map[string][]store.Row),
		prefixes: map[string]string{
			types.TableInvoices:  types.UUID_PREFIX_INVOICE,
			types.TableCustomers: types.UUID_PREFIX_CUSTOMER,
			types.TableRevenue:   types.UUID_PREFIX_REVENUE,
		},
		failures: make(map[string]error),
	}
}

// Seed appends rows to table as given, without generating IDs
func (s *InMemoryStore) Seed(table string, rows ...store.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		s.tables[table] = append(s.tables[table], copyRow(row))
	}
}

// Rows returns a copy of every row in table
func (s *InMemoryStore) Rows(table string) []store.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.tables[table], func(r store.Row, _ int) store.Row { return copyRow(r) })
}

// FailOn makes every call of op ("select", "insert", "update", "delete",
// "ping") on table fail with err. An empty table matches all tables.
func (s *InMemoryStore) FailOn(op, table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op+":"+table] = err
}

// LastQuery returns the most recent select, or nil
func (s *InMemoryStore) LastQuery() *store.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.queries) == 0 {
		return nil
	}
	return s.queries[len(s.queries)-1]
}

// Queries returns every select received, oldest first
func (s *InMemoryStore) Queries() []*store.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*store.Query{}, s.queries...)
}

// Clear removes all rows, queries and failures
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[string][]store.Row)
	s.queries = nil
	s.failures = make(map[string]error)
}

func (s *InMemoryStore) failure(op, table string) error {
	if err, ok := s.failures[op+":"+table]; ok {
		return err
	}
	return s.failures[op+":"]
}

func (s *InMemoryStore) Select(ctx context.Context, q *store.Query) (*store.Result, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.failure("select", q.Table); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	type joined struct {
		base  store.Row
		other store.Row
	}

	var matched []joined
	for _, row := range s.tables[q.Table] {
		j := joined{base: row}
		if q.Join != nil {
			other, ok := lo.Find(s.tables[q.Join.Table], func(r store.Row) bool {
				return fmt.Sprint(r[q.Join.ForeignKey]) == fmt.Sprint(row[q.Join.LocalKey])
			})
			if !ok && q.Join.Inner {
				continue
			}
			j.other = other
		}

		value := func(f store.Filter) any {
			if f.Table != "" && f.Table != q.Table {
				return j.other[f.Column]
			}
			return j.base[f.Column]
		}

		ok := lo.EveryBy(q.Filters, func(f store.Filter) bool { return matches(value(f), f) })
		if ok && len(q.Or) > 0 {
			ok = lo.SomeBy(q.Or, func(f store.Filter) bool { return matches(value(f), f) })
		}
		if ok {
			matched = append(matched, j)
		}
	}

	for i := len(q.Orders) - 1; i >= 0; i-- {
		o := q.Orders[i]
		sort.SliceStable(matched, func(a, b int) bool {
			c := compare(matched[a].base[o.Column], matched[b].base[o.Column])
			if o.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	result := &store.Result{Rows: []store.Row{}}
	if q.Count {
		total := len(matched)
		result.Count = &total
	}
	if q.CountOnly {
		return result, nil
	}

	if q.Range != nil {
		start := lo.Min([]int{q.Range.Offset, len(matched)})
		end := lo.Min([]int{q.Range.Offset + q.Range.Limit, len(matched)})
		matched = matched[start:end]
	}

	for _, j := range matched {
		out := project(j.base, q.Columns)
		if q.Join != nil {
			for k, v := range project(j.other, q.Join.Columns) {
				out[k] = v
			}
		}
		result.Rows = append(result.Rows, out)
	}
	return result, nil
}

func (s *InMemoryStore) Insert(ctx context.Context, table string, record store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("insert", table); err != nil {
		return err
	}

	row := copyRow(store.Row(record))
	if _, ok := row["id"]; !ok {
		row["id"] = types.GenerateUUIDWithPrefix(s.prefixes[table])
	}
	s.tables[table] = append(s.tables[table], row)
	return nil
}

func (s *InMemoryStore) Update(ctx context.Context, table string, m store.Match, record store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("update", table); err != nil {
		return err
	}

	for _, row := range s.tables[table] {
		if fmt.Sprint(row[m.Column]) != fmt.Sprint(m.Value) {
			continue
		}
		for k, v := range record {
			row[k] = v
		}
	}
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, table string, m store.Match) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("delete", table); err != nil {
		return 0, err
	}

	kept, removed := lo.FilterReject(s.tables[table], func(row store.Row, _ int) bool {
		return fmt.Sprint(row[m.Column]) != fmt.Sprint(m.Value)
	})
	s.tables[table] = kept
	return len(removed), nil
}

func (s *InMemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure("ping", "")
}

func matches(v any, f store.Filter) bool {
	actual := fmt.Sprint(v)
	switch f.Op {
	case store.OpILike:
		pattern := strings.ToLower(fmt.Sprint(f.Value))
		actual = strings.ToLower(actual)
		switch {
		case strings.HasPrefix(pattern, "%") && strings.HasSuffix(pattern, "%") && len(pattern) >= 2:
			return strings.Contains(actual, pattern[1:len(pattern)-1])
		case strings.HasPrefix(pattern, "%"):
			return strings.HasSuffix(actual, pattern[1:])
		case strings.HasSuffix(pattern, "%"):
			return strings.HasPrefix(actual, pattern[:len(pattern)-1])
		default:
			return actual == pattern
		}
	case store.OpIn:
		values, _ := f.Value.([]string)
		return lo.Contains(values, actual)
	default:
		return actual == fmt.Sprint(f.Value)
	}
}

// compare orders numbers numerically and everything else as strings
func compare(a, b any) int {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func project(row store.Row, columns []string) store.Row {
	if len(columns) == 0 {
		return copyRow(row)
	}
	out := make(store.Row, len(columns))
	for _, c := range columns {
		if v, ok := row[c]; ok {
			out[c] = v
		}
	}
	return out
}

func copyRow(row store.Row) store.Row {
	out := make(store.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
