// Package store defines the remote data client used by the gateways.
//
// A Client runs queries against the named collections of a hosted
// relational database. Implementations live in the supabase and postgres
// subpackages; both are safe for concurrent use and are created once per
// process.
package store

import (
	"context"
)

// Client is the capability the gateways need from the remote database
type Client interface {
	// Select runs q and returns the matching rows, plus the exact number
	// of matches when q asks for a count
	Select(ctx context.Context, q *Query) (*Result, error)

	// Insert adds one record to table
	Insert(ctx context.Context, table string, record Record) error

	// Update overwrites the given columns of every row matching m
	Update(ctx context.Context, table string, m Match, record Record) error

	// Delete removes every row matching m and returns how many were removed
	Delete(ctx context.Context, table string, m Match) (int, error)

	// Ping checks the store is reachable
	Ping(ctx context.Context) error
}

// Record is a set of column values to write
type Record map[string]any

// Match selects rows by equality on one column
type Match struct {
	Column string
	Value  any
}

// MatchID matches the row with the given primary key
func MatchID(id string) Match {
	return Match{Column: "id", Value: id}
}
