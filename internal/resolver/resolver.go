// internal/resolver/resolver.go
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tamzrod/stalewatch/internal/state"
)

const (
	// NodeIndex is the inventory index holding hosts.
	NodeIndex = "node"
	// CheckInField is the per-node last check-in timestamp (unix seconds).
	CheckInField = "ohai_time"
	// openLower is the unbounded lower end of a range query.
	openLower = "*"
)

// Searcher abstracts the inventory query the resolver needs.
// One call = one page starting at row start.
type Searcher interface {
	Search(ctx context.Context, index, statement string, start int) ([]Row, error)
}

// Config is the minimal runtime config the resolver needs.
type Config struct {
	Threshold time.Duration
}

// Resolver turns a staleness threshold into the current stale set.
type Resolver struct {
	cfg      Config
	searcher Searcher
	now      func() time.Time
}

// New creates a resolver with immutable config.
func New(cfg Config, searcher Searcher) (*Resolver, error) {
	if cfg.Threshold <= 0 {
		return nil, errors.New("resolver: threshold must be > 0")
	}
	if searcher == nil {
		return nil, errors.New("resolver: searcher required")
	}
	return &Resolver{cfg: cfg, searcher: searcher, now: time.Now}, nil
}

// QueryAt returns the query issued for evaluation instant now.
func (r *Resolver) QueryAt(now time.Time) Query {
	cutoff := now.Add(-r.cfg.Threshold)
	return Query{
		Index: NodeIndex,
		Field: CheckInField,
		Lower: openLower,
		Upper: strconv.FormatInt(cutoff.Unix(), 10),
		Start: 0,
	}
}

// Resolve performs exactly one inventory query and returns the stale set.
// All-or-nothing: a transport failure or any malformed row fails the call.
// An empty set is only ever returned for an empty, well-formed result.
func (r *Resolver) Resolve(ctx context.Context) (state.Set, Result, error) {
	now := r.now()
	q := r.QueryAt(now)
	res := Result{
		Cutoff: now.Add(-r.cfg.Threshold),
		Query:  q,
	}

	rows, err := r.searcher.Search(ctx, q.Index, q.Statement(), q.Start)
	if err != nil {
		return nil, res, fmt.Errorf("resolver: search %s %q: %w", q.Index, q.Statement(), err)
	}
	res.Rows = len(rows)

	stale := state.NewSet()
	for i, row := range rows {
		name, err := rowName(row)
		if err != nil {
			return nil, res, fmt.Errorf("resolver: row %d: %w", i, err)
		}
		stale.Add(name)
	}

	return stale, res, nil
}

func rowName(row Row) (string, error) {
	if row == nil {
		return "", errors.New("malformed row: null")
	}
	v, ok := row["name"]
	if !ok {
		return "", errors.New("malformed row: no name field")
	}
	name, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("malformed row: name is %T, not string", v)
	}
	if name == "" {
		return "", errors.New("malformed row: empty name")
	}
	return name, nil
}
