// Package aggregate reshapes aggregate query rows into aligned, named
// numeric series over a shared date axis, the form the chart renderer
// consumes. All functions are pure.
package aggregate

import (
	"fmt"
	"sort"
)

// Row is one aggregate query result: a sortable bucket key, one or more
// group columns, and the numeric value in the last position.
type Row struct {
	Bucket float64
	Groups []string
	Value  float64
}

// Series is a dataframe-like mapping from series name to a numeric sequence.
// Every sequence in Values has exactly len(Date) elements, aligned to the
// sorted, deduplicated Date axis, with 0 for buckets the series did not
// contribute to.
type Series struct {
	Date   []float64
	Values map[string][]float64
}

// Reshape groups rows into a Series keyed by the group column at groupIndex.
// Values sharing a (bucket, group) pair are summed. Empty input yields an
// empty date axis and no series.
func Reshape(rows []Row, groupIndex int) (*Series, error) {
	buckets := make(map[float64]int)
	for _, r := range rows {
		if groupIndex < 0 || groupIndex >= len(r.Groups) {
			return nil, fmt.Errorf("group index %d out of range for row with %d groups", groupIndex, len(r.Groups))
		}
		buckets[r.Bucket] = 0
	}

	date := make([]float64, 0, len(buckets))
	for b := range buckets {
		date = append(date, b)
	}
	sort.Float64s(date)
	for i, b := range date {
		buckets[b] = i
	}

	values := make(map[string][]float64)
	for _, r := range rows {
		name := r.Groups[groupIndex]
		seq, ok := values[name]
		if !ok {
			seq = make([]float64, len(date))
			values[name] = seq
		}
		seq[buckets[r.Bucket]] += r.Value
	}

	return &Series{Date: date, Values: values}, nil
}

// Filter returns the rows whose group column at index equals value. Used to
// slice a multi-group query result before reshaping on another column.
func Filter(rows []Row, index int, value string) []Row {
	var out []Row
	for _, r := range rows {
		if index < len(r.Groups) && r.Groups[index] == value {
			out = append(out, r)
		}
	}
	return out
}

// Cumulative returns a copy of s with every series replaced by its running
// sum. The date axis is shared, not copied.
func (s *Series) Cumulative() *Series {
	out := &Series{Date: s.Date, Values: make(map[string][]float64, len(s.Values))}
	for name, seq := range s.Values {
		acc := make([]float64, len(seq))
		var sum float64
		for i, v := range seq {
			sum += v
			acc[i] = sum
		}
		out.Values[name] = acc
	}
	return out
}

// Names returns the series names in deterministic (sorted) order.
func (s *Series) Names() []string {
	names := make([]string, 0, len(s.Values))
	for name := range s.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
