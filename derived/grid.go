// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import "sort"

// A Grid is the tabular context derived data is evaluated against.
//
// A Grid is an ordered list of Rows. Each Row has an x-value, a
// SeriesGroup, and a set of named y-values ("columns"). Rows are added
// before evaluation and are never removed or reordered; evaluation only
// adds columns.
//
// A Grid must not be used by more than one goroutine at a time.
type Grid struct {
	rows []*Row

	// computed records the columns materialized by Functions.
	computed map[string]bool
}

// A Row is a single row of a Grid.
type Row struct {
	x      Value
	series SeriesGroup
	ys     map[string]Value
}

// NewGrid returns an empty Grid.
func NewGrid() *Grid {
	return &Grid{computed: make(map[string]bool)}
}

// AddRow appends a new row with x-value x to series s and returns it.
func (g *Grid) AddRow(x Value, s SeriesGroup) *Row {
	row := &Row{x: x, series: s, ys: make(map[string]Value)}
	g.rows = append(g.rows, row)
	return row
}

// Rows returns the rows of g in the order they were added.
// The caller must not modify the returned slice.
func (g *Grid) Rows() []*Row {
	return g.rows
}

// Len returns the number of rows in g.
func (g *Grid) Len() int {
	return len(g.rows)
}

// HasColumn reports whether any row of g has a value in column name,
// or whether a Function has already materialized that column.
func (g *Grid) HasColumn(name string) bool {
	if g.computed[name] {
		return true
	}
	for _, row := range g.rows {
		if _, ok := row.ys[name]; ok {
			return true
		}
	}
	return false
}

// ColumnKinds returns the set of Kinds of the non-null values in column
// name.
func (g *Grid) ColumnKinds(name string) KindSet {
	var s KindSet
	for _, row := range g.rows {
		if v, ok := row.ys[name]; ok && !v.IsNull() {
			s |= Kinds(v.kind)
		}
	}
	return s
}

// Column returns the values of column name in row order. Rows without
// a value in the column yield the null Value.
func (g *Grid) Column(name string) []Value {
	out := make([]Value, len(g.rows))
	for i, row := range g.rows {
		out[i] = row.ys[name]
	}
	return out
}

// ColumnNames returns the sorted names of all columns present on any
// row of g.
func (g *Grid) ColumnNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range g.rows {
		for name := range row.ys {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// SeriesGroups returns the distinct SeriesGroups of g's rows in the
// order they first appear.
func (g *Grid) SeriesGroups() []SeriesGroup {
	seen := make(map[SeriesGroup]bool)
	var out []SeriesGroup
	for _, row := range g.rows {
		if !seen[row.series] {
			seen[row.series] = true
			out = append(out, row.series)
		}
	}
	return out
}

func (g *Grid) isComputed(name string) bool {
	return g.computed[name]
}

func (g *Grid) markComputed(name string) {
	if g.computed == nil {
		g.computed = make(map[string]bool)
	}
	g.computed[name] = true
}

// X returns the x-value of r.
func (r *Row) X() Value {
	return r.x
}

// Series returns the SeriesGroup of r.
func (r *Row) Series() SeriesGroup {
	return r.series
}

// YValue returns the value of column name in r, and whether r has a
// value for that column.
func (r *Row) YValue(name string) (Value, bool) {
	v, ok := r.ys[name]
	return v, ok
}

// SetYValue sets the value of column name in r, replacing any existing
// value.
func (r *Row) SetYValue(name string, v Value) {
	r.ys[name] = v
}

// Columns returns the sorted names of the columns r has values for.
func (r *Row) Columns() []string {
	names := make([]string, 0, len(r.ys))
	for name := range r.ys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// groupKey identifies the (series, x-value) group of a row. The x-value
// is keyed by its exact raw value, with no tolerance.
type groupKey struct {
	series string
	x      valueKey
}

func (r *Row) groupKey() groupKey {
	return groupKey{r.series.name, r.x.key()}
}
