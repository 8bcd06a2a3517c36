// Package query plans and executes time-windowed, filtered entry lookups
// against a store.
package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"logsift/pkg/filter"
	"logsift/pkg/model"
)

// Reader supplies stored entries for a time range. Implementations return
// entries in insertion order or better; the planner handles final ordering.
type Reader interface {
	// Range returns all entries with ts in [start, end] inclusive.
	Range(ctx context.Context, start, end int64) ([]model.Entry, error)
}

// FilteredReader is an optional Reader upgrade that evaluates parsed filters
// and the result limit inside the store. Implementations must preserve the
// filters' left-to-right fold semantics and order results by ts ascending
// with insertion order breaking ties.
type FilteredReader interface {
	Reader
	FilteredRange(ctx context.Context, start, end int64, filters []*filter.Filter, limit int) ([]model.Entry, error)
}

// Request describes one query.
type Request struct {
	// Target is the center of the time window.
	Target time.Time

	// RadiusSeconds extends the window to [target-radius, target+radius],
	// inclusive. Must be non-negative.
	RadiusSeconds int64

	// Filters are AND-combined; an entry must satisfy every one.
	Filters []*filter.Filter

	// Limit caps the number of returned entries; zero means unlimited.
	Limit int
}

// Window is the resolved inclusive query range in epoch seconds.
type Window struct {
	Start int64
	End   int64
}

// Result holds the ordered survivors of a query. Empty Entries is a normal
// outcome, not an error.
type Result struct {
	Window  Window
	Entries []model.Entry
}

// Planner retrieves, filters, orders and limits entries for a request.
type Planner struct {
	reader Reader
	log    zerolog.Logger
}

// NewPlanner creates a planner over the given reader.
func NewPlanner(reader Reader, log zerolog.Logger) *Planner {
	return &Planner{reader: reader, log: log}
}

// Run executes the request: entries within the window, satisfying every
// filter, ascending by ts with ties in insertion order, capped at the limit.
func (p *Planner) Run(ctx context.Context, req Request) (*Result, error) {
	if req.RadiusSeconds < 0 {
		return nil, fmt.Errorf("range must be non-negative, got %d", req.RadiusSeconds)
	}

	target := req.Target.Unix()
	w := Window{Start: target - req.RadiusSeconds, End: target + req.RadiusSeconds}

	p.log.Debug().
		Int64("start", w.Start).
		Int64("end", w.End).
		Int("filters", len(req.Filters)).
		Int("limit", req.Limit).
		Msg("running query")

	if fr, ok := p.reader.(FilteredReader); ok {
		entries, err := fr.FilteredRange(ctx, w.Start, w.End, req.Filters, req.Limit)
		if err != nil {
			return nil, fmt.Errorf("querying store: %w", err)
		}
		p.log.Debug().Int("entries", len(entries)).Msg("store evaluated filters")
		return &Result{Window: w, Entries: entries}, nil
	}

	candidates, err := p.reader.Range(ctx, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("querying store: %w", err)
	}

	entries := candidates[:0:0]
	for _, e := range candidates {
		if filter.EvaluateAll(req.Filters, e) {
			entries = append(entries, e)
		}
	}

	// Stable sort keeps insertion order for entries sharing a second.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].TS < entries[j].TS })

	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	p.log.Debug().
		Int("candidates", len(candidates)).
		Int("entries", len(entries)).
		Msg("evaluated filters in memory")

	return &Result{Window: w, Entries: entries}, nil
}
