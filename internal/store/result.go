package store

import (
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/go-viper/mapstructure/v2"
)

// Row is one result row keyed by column name
type Row map[string]any

// Result holds the rows of a Select and, when requested, the exact count
type Result struct {
	Rows  []Row
	Count *int
}

// TotalCount returns the exact count or an error when the backend did
// not report a usable one
func (r *Result) TotalCount() (int, error) {
	if r == nil || r.Count == nil {
		return 0, ierr.NewError("store returned no count").
			Mark(ierr.ErrSystem)
	}
	if *r.Count < 0 {
		return 0, ierr.NewError("store returned invalid count").
			WithHintf("count=%d", *r.Count).
			Mark(ierr.ErrSystem)
	}
	return *r.Count, nil
}

// Decode copies the rows into dest, a pointer to a slice of structs or
// struct pointers tagged with mapstructure column names
func (r *Result) Decode(dest any) error {
	rows := []Row{}
	if r != nil && r.Rows != nil {
		rows = r.Rows
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dest,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	if err := decoder.Decode(rows); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to decode rows").
			Mark(ierr.ErrSystem)
	}
	return nil
}
