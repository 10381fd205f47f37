// internal/resolver/types.go
package resolver

import (
	"fmt"
	"time"
)

// Row is one search result row as returned by the inventory.
// Only the "name" field is interpreted.
type Row = map[string]any

// Query is one range search against the inventory:
// index rows whose Field lies in [Lower, Upper], starting at row Start.
type Query struct {
	Index string
	Field string
	Lower string
	Upper string
	Start int
}

// Statement renders the query in inventory search syntax.
func (q Query) Statement() string {
	return fmt.Sprintf("%s:[%s TO %s]", q.Field, q.Lower, q.Upper)
}

// Result is what one resolve produced, kept for logging.
type Result struct {
	Cutoff time.Time
	Query  Query
	Rows   int
}
