// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plotdata reads evaluated columns back out of a derived.Grid
// in forms suitable for plotting.
//
// None of these functions modify the grid. Orderings they impose are
// for display only.
package plotdata

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"

	"golang.org/x/benchplot/derived"
)

// A Point is one row's value in a column.
type Point struct {
	Series derived.SeriesGroup
	X      derived.Value
	Y      derived.Value
}

// A Line is the points of one series, ordered by x.
type Line struct {
	Series derived.SeriesGroup
	Points []Point
}

// Points returns the value of column on every row that has one, in
// row order.
func Points(g *derived.Grid, column string) []Point {
	var pts []Point
	for _, row := range g.Rows() {
		if y, ok := row.YValue(column); ok && !y.IsNull() {
			pts = append(pts, Point{row.Series(), row.X(), y})
		}
	}
	return pts
}

// Series groups the points of column by series. Lines are ordered by
// series name and points within a line by x-value. Points with equal
// x-values keep their row order.
func Series(g *derived.Grid, column string) []Line {
	var lines []Line
	index := make(map[derived.SeriesGroup]int)
	for _, p := range Points(g, column) {
		i, ok := index[p.Series]
		if !ok {
			i = len(lines)
			index[p.Series] = i
			lines = append(lines, Line{Series: p.Series})
		}
		lines[i].Points = append(lines[i].Points, p)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Series.Compare(lines[j].Series) < 0
	})
	for _, line := range lines {
		pts := line.Points
		sort.SliceStable(pts, func(i, j int) bool {
			return lessX(pts[i].X, pts[j].X)
		})
	}
	return lines
}

// lessX orders numbers numerically before strings, and strings
// lexically.
func lessX(a, b derived.Value) bool {
	af, aNum := a.Float()
	bf, bNum := b.Float()
	switch {
	case aNum && bNum:
		return af < bf
	case aNum != bNum:
		return aNum
	}
	return a.String() < b.String()
}

// Table returns the points of column as a table with columns "series",
// "x", "value", and "error", in the order given by Series. Values are
// formatted as text so that string results are kept; numbers use up to
// six significant digits. A point without an error has error 0.
func Table(g *derived.Grid, column string) *table.Table {
	var series, xs, values []string
	var errs []float64
	for _, line := range Series(g, column) {
		for _, p := range line.Points {
			val := p.Y.String()
			if y, ok := p.Y.Float(); ok {
				val = strconv.FormatFloat(y, 'g', 6, 64)
			}
			e, _ := p.Y.Error()
			series = append(series, line.Series.Name())
			xs = append(xs, p.X.String())
			values = append(values, val)
			errs = append(errs, e)
		}
	}
	return new(table.Builder).
		Add("series", series).
		Add("x", xs).
		Add("value", values).
		Add("error", errs).
		Done()
}

// WriteText writes the points of column to w as an aligned text table.
func WriteText(w io.Writer, g *derived.Grid, column string) error {
	err := table.Fprint(w, Table(g, column), "%s", "%s", "%s", "%.6g")
	return errors.Wrap(err, "writing table")
}

// WriteCSV writes the points of column to w as CSV with the header
// "series,x,value,error". The error field is empty for points without
// an error.
func WriteCSV(w io.Writer, g *derived.Grid, column string) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"series", "x", "value", "error"})
	for _, line := range Series(g, column) {
		for _, p := range line.Points {
			errField := ""
			if e, ok := p.Y.Error(); ok {
				errField = strconv.FormatFloat(e, 'g', -1, 64)
			}
			cw.Write([]string{line.Series.Name(), p.X.String(), p.Y.String(), errField})
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "writing CSV")
}
