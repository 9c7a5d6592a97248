package supabase

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/store"
)

// restPath is where a Supabase project serves PostgREST
const restPath = "/rest/v1"

// reservedChars must be quoted inside PostgREST list and logic values
const reservedChars = ",.:()\" \\"

// encodeQuery renders q as PostgREST query parameters
func encodeQuery(q *store.Query) url.Values {
	params := url.Values{}
	params.Set("select", selectClause(q))

	for _, f := range q.Filters {
		params.Add(filterKey(f), filterValue(f))
	}

	if len(q.Or) > 0 {
		key := "or"
		if table := q.Or[0].Table; table != "" {
			key = table + ".or"
		}
		parts := make([]string, len(q.Or))
		for i, f := range q.Or {
			parts[i] = f.Column + "." + logicValue(f)
		}
		params.Set(key, "("+strings.Join(parts, ",")+")")
	}

	if len(q.Orders) > 0 {
		orders := make([]string, len(q.Orders))
		for i, o := range q.Orders {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			orders[i] = o.Column + "." + dir
		}
		params.Set("order", strings.Join(orders, ","))
	}

	if q.Range != nil {
		params.Set("offset", strconv.Itoa(q.Range.Offset))
		params.Set("limit", strconv.Itoa(q.Range.Limit))
	}

	return params
}

// selectClause lists the columns, spreading joined columns into the row
func selectClause(q *store.Query) string {
	cols := "*"
	if len(q.Columns) > 0 {
		cols = strings.Join(q.Columns, ",")
	}
	if q.Join == nil {
		return cols
	}

	embed := q.Join.Table
	if q.Join.Inner {
		embed += "!inner"
	}
	joined := "*"
	if len(q.Join.Columns) > 0 {
		joined = strings.Join(q.Join.Columns, ",")
	}
	return fmt.Sprintf("%s,...%s(%s)", cols, embed, joined)
}

func filterKey(f store.Filter) string {
	if f.Table == "" {
		return f.Column
	}
	return f.Table + "." + f.Column
}

// filterValue renders the operator and operand of a top-level filter
func filterValue(f store.Filter) string {
	switch f.Op {
	case store.OpILike:
		return "ilike." + likePattern(f.Value)
	case store.OpIn:
		return "in." + listValue(f.Value)
	default:
		return string(f.Op) + "." + fmt.Sprint(f.Value)
	}
}

// logicValue renders a filter nested in an or=(...) group
func logicValue(f store.Filter) string {
	switch f.Op {
	case store.OpILike:
		return "ilike." + quote(likePattern(f.Value))
	case store.OpIn:
		return "in." + listValue(f.Value)
	default:
		return string(f.Op) + "." + quote(fmt.Sprint(f.Value))
	}
}

// likePattern uses PostgREST's URL-safe wildcard
func likePattern(v any) string {
	return strings.ReplaceAll(fmt.Sprint(v), "%", "*")
}

func listValue(v any) string {
	values, _ := v.([]string)
	quoted := make([]string, len(values))
	for i, s := range values {
		quoted[i] = quote(s)
	}
	return "(" + strings.Join(quoted, ",") + ")"
}

func quote(s string) string {
	if !strings.ContainsAny(s, reservedChars) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// parseContentRange reads the total from a Content-Range header such as
// "0-5/13" or "*/13"
func parseContentRange(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0, ierr.NewError("malformed content-range").
			WithHintf("content-range %q", header).
			Mark(ierr.ErrHTTPClient)
	}
	total := strings.TrimSpace(header[idx+1:])
	if total == "*" {
		return 0, ierr.NewError("content-range has no total").
			WithHintf("content-range %q", header).
			Mark(ierr.ErrHTTPClient)
	}
	n, err := strconv.Atoi(total)
	if err != nil || n < 0 {
		return 0, ierr.NewError("malformed content-range total").
			WithHintf("total %q", total).
			Mark(ierr.ErrHTTPClient)
	}
	return n, nil
}
