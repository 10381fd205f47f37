// internal/resolver/resolver_test.go
package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/stalewatch/internal/state"
)

type searchCall struct {
	index     string
	statement string
	start     int
}

type fakeSearcher struct {
	rows  []Row
	err   error
	calls []searchCall
}

func (f *fakeSearcher) Search(_ context.Context, index, statement string, start int) ([]Row, error) {
	f.calls = append(f.calls, searchCall{index: index, statement: statement, start: start})
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

var fixedNow = time.Unix(1_700_000_000, 0)

func newTestResolver(t *testing.T, s Searcher) *Resolver {
	t.Helper()
	r, err := New(Config{Threshold: 4800 * time.Second}, s)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	r.now = func() time.Time { return fixedNow }
	return r
}

func TestResolve_QueryShape(t *testing.T) {
	fake := &fakeSearcher{}
	r := newTestResolver(t, fake)

	_, res, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() err=%v", err)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected exactly 1 search, got %d", len(fake.calls))
	}
	call := fake.calls[0]
	if call.index != "node" {
		t.Fatalf("index = %q, want node", call.index)
	}
	if want := "ohai_time:[* TO 1699995200]"; call.statement != want {
		t.Fatalf("statement = %q, want %q", call.statement, want)
	}
	if call.start != 0 {
		t.Fatalf("start = %d, want 0", call.start)
	}
	if !res.Cutoff.Equal(fixedNow.Add(-80 * time.Minute)) {
		t.Fatalf("cutoff = %v", res.Cutoff)
	}
}

func TestResolve_ExtractsAndDedupsNames(t *testing.T) {
	fake := &fakeSearcher{rows: []Row{
		{"name": "b.example.com", "ohai_time": 1.0},
		{"name": "a.example.com"},
		{"name": "b.example.com"},
	}}
	r := newTestResolver(t, fake)

	got, res, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() err=%v", err)
	}
	if !got.Equal(state.NewSet("a.example.com", "b.example.com")) {
		t.Fatalf("stale = %v", got.Sorted())
	}
	if res.Rows != 3 {
		t.Fatalf("rows = %d, want 3", res.Rows)
	}
}

func TestResolve_EmptyResultIsEmptySet(t *testing.T) {
	r := newTestResolver(t, &fakeSearcher{rows: []Row{}})

	got, _, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() err=%v", err)
	}
	if got == nil || got.Len() != 0 {
		t.Fatalf("expected empty non-nil set, got %v", got)
	}
}

func TestResolve_SearchFailurePropagates(t *testing.T) {
	boom := errors.New("connection refused")
	r := newTestResolver(t, &fakeSearcher{err: boom})

	got, _, err := r.Resolve(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Resolve() err=%v, want wrapped boom", err)
	}
	if got != nil {
		t.Fatalf("expected nil set on failure, got %v", got.Sorted())
	}
}

func TestResolve_MalformedRowsFail(t *testing.T) {
	cases := map[string]Row{
		"nil row":     nil,
		"no name":     {"fqdn": "a.example.com"},
		"non-string":  {"name": 42},
		"empty name":  {"name": ""},
		"nested name": {"name": map[string]any{"x": "y"}},
	}

	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			r := newTestResolver(t, &fakeSearcher{rows: []Row{
				{"name": "ok.example.com"},
				bad,
			}})

			got, _, err := r.Resolve(context.Background())
			if err == nil {
				t.Fatalf("expected error, got set %v", got.Sorted())
			}
			if got != nil {
				t.Fatalf("expected no partial set, got %v", got.Sorted())
			}
		})
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}, &fakeSearcher{}); err == nil {
		t.Fatalf("expected error for zero threshold")
	}
	if _, err := New(Config{Threshold: time.Minute}, nil); err == nil {
		t.Fatalf("expected error for nil searcher")
	}
}

func TestQuery_Statement(t *testing.T) {
	q := Query{Field: "ohai_time", Lower: "*", Upper: "100"}
	if got := q.Statement(); got != "ohai_time:[* TO 100]" {
		t.Fatalf("statement = %q", got)
	}
}
