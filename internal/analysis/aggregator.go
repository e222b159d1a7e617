package analysis

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"armbench/domain/table"
	"armbench/internal/errors"
)

// Reducer names a per-group reduction over a numeric column
type Reducer string

const (
	ReduceMean  Reducer = "mean"
	ReduceMax   Reducer = "max"
	ReduceMin   Reducer = "min"
	ReduceStd   Reducer = "std"
	ReduceCount Reducer = "count"
)

// Request describes one aggregation: group keys and the reductions to apply
// per numeric column. An empty GroupBy reduces the whole table as a single
// group.
type Request struct {
	GroupBy []string             `json:"group_by"`
	Reduce  map[string][]Reducer `json:"reduce"`
}

// GroupRow is the reduced statistics for one group-key combination. Stats
// keys are "<column>_<reducer>". GroupRows are value objects computed fresh
// per aggregation and never mutated.
type GroupRow struct {
	Key   map[string]string  `json:"key"`
	Stats map[string]float64 `json:"stats"`
	Count int                `json:"count"`
}

// KeyLabel renders the group key in GroupBy order, for tables and logs
func (g GroupRow) KeyLabel(groupBy []string) string {
	parts := make([]string, 0, len(groupBy))
	for _, k := range groupBy {
		parts = append(parts, g.Key[k])
	}
	return strings.Join(parts, "/")
}

// Aggregator groups rows by categorical key combinations and reduces numeric
// columns per group.
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate emits one GroupRow per group-key combination actually present in
// the table, in first-seen row order. Absent combinations are not emitted
// and never zero-filled. Group and reduction columns must exist; a missing
// one is a loud error, unlike the deriver's silent skip.
func (a *Aggregator) Aggregate(t *table.Table, req Request) ([]GroupRow, error) {
	groups, order, err := a.partition(t, req)
	if err != nil {
		return nil, err
	}

	out := make([]GroupRow, len(order))
	for i, key := range order {
		out[i] = reduceGroup(groups[key], req)
	}
	return out, nil
}

// AggregateConcurrent is Aggregate with per-group reductions fanned out
// under a weighted semaphore. Group reductions are independent, and results
// merge by group index, so no ordering coordination is needed.
func (a *Aggregator) AggregateConcurrent(ctx context.Context, t *table.Table, req Request, maxWorkers int64) ([]GroupRow, error) {
	if maxWorkers <= 1 {
		return a.Aggregate(t, req)
	}

	groups, order, err := a.partition(t, req)
	if err != nil {
		return nil, err
	}

	sem := semaphore.NewWeighted(maxWorkers)
	var wg sync.WaitGroup
	out := make([]GroupRow, len(order))
	for i, key := range order {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "aggregate: acquiring group worker")
		}
		wg.Add(1)
		go func(i int, rows *groupRows) {
			defer wg.Done()
			defer sem.Release(1)
			out[i] = reduceGroup(rows, req)
		}(i, groups[key])
	}
	wg.Wait()
	return out, nil
}

// groupRows is one group's key values plus its member rows
type groupRows struct {
	key  map[string]string
	rows []table.Row
}

// partition validates the request and splits rows into groups keyed by the
// composite group-key value, preserving first-seen order
func (a *Aggregator) partition(t *table.Table, req Request) (map[string]*groupRows, []string, error) {
	if t.RowCount() == 0 {
		return nil, nil, errors.EmptyTable("aggregate")
	}
	for _, col := range req.GroupBy {
		if !t.HasColumn(col) {
			return nil, nil, errors.MissingColumn("aggregate", col)
		}
	}
	for col := range req.Reduce {
		if !t.HasColumn(col) {
			return nil, nil, errors.MissingColumn("aggregate", col)
		}
	}

	groups := make(map[string]*groupRows)
	var order []string
	for _, row := range t.Rows {
		key, keyValues := compositeKey(row, req.GroupBy)
		g, ok := groups[key]
		if !ok {
			g = &groupRows{key: keyValues}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, row)
	}
	return groups, order, nil
}

// compositeKey renders the group-key cells into a map plus a stable string
// key. Group keys partition the table: every row lands in exactly one group.
func compositeKey(row table.Row, groupBy []string) (string, map[string]string) {
	keyValues := make(map[string]string, len(groupBy))
	parts := make([]string, len(groupBy))
	for i, col := range groupBy {
		label := row[col].Render()
		keyValues[col] = label
		parts[i] = label
	}
	return strings.Join(parts, "\x1f"), keyValues
}

// reduceGroup applies the requested reducers over one group's rows
func reduceGroup(g *groupRows, req Request) GroupRow {
	out := GroupRow{
		Key:   g.key,
		Stats: make(map[string]float64),
		Count: len(g.rows),
	}

	for col, reducers := range req.Reduce {
		values := columnValues(g.rows, col)
		for _, r := range reducers {
			if r == ReduceCount {
				out.Stats[col+"_count"] = float64(len(values))
				continue
			}
			if len(values) == 0 {
				continue
			}
			switch r {
			case ReduceMean:
				out.Stats[col+"_mean"] = stat.Mean(values, nil)
			case ReduceMax:
				out.Stats[col+"_max"] = floats.Max(values)
			case ReduceMin:
				out.Stats[col+"_min"] = floats.Min(values)
			case ReduceStd:
				if len(values) > 1 {
					out.Stats[col+"_std"] = stat.StdDev(values, nil)
				}
			}
		}
	}
	return out
}

func columnValues(rows []table.Row, col string) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := row[col]; ok && v.IsNumeric() {
			values = append(values, v.Float())
		}
	}
	return values
}
