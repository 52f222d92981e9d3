// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import (
	"math"
	"testing"
)

type valErr struct {
	v, err float64
}

// aggregateValues evaluates f(speed) on g and returns the value and
// error on each row, or NaNs for rows without a value.
func aggregateValues(t *testing.T, newF func() Function, g *Grid) []valErr {
	t.Helper()
	f := mustBind(t, newF(), NewVariable("speed", AnyKind))
	name := mustEval(t, f, g)
	var out []valErr
	for _, row := range g.Rows() {
		v, ok := row.YValue(name)
		if !ok {
			out = append(out, valErr{math.NaN(), math.NaN()})
			continue
		}
		x, _ := v.Float()
		e, _ := v.Error()
		out = append(out, valErr{x, e})
	}
	return out
}

func checkValErrs(t *testing.T, what string, got, want []valErr) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d rows, want %d", what, len(got), len(want))
	}
	same := func(a, b float64) bool {
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}
	for i := range got {
		if !same(got[i].v, want[i].v) || !same(got[i].err, want[i].err) {
			t.Errorf("%s: row %d = %v, want %v", what, i, got[i], want[i])
		}
	}
}

func TestAvgSingleRow(t *testing.T) {
	for _, x := range []Value{Double(1.0 / 3), Double(-7.25), Integer(12)} {
		g := NewGrid()
		addRow(g, "A", Double(1), "speed", x.WithError(0.1))
		got := aggregateValues(t, NewAvg, g)
		f, _ := x.Float()
		checkValErrs(t, "avg", got, []valErr{{f, 0.1}})
	}
}

func TestAvg(t *testing.T) {
	g := NewGrid()
	// Rows of a group are interleaved with other groups.
	addRow(g, "A", Double(1), "speed", Double(1).WithError(0.2))
	addRow(g, "B", Double(1), "speed", Double(10))
	addRow(g, "A", Double(2), "speed", Double(5))
	addRow(g, "A", Double(1), "speed", Double(3).WithError(0.4))
	addRow(g, "A", Double(1), "speed", String("n/a"))
	addRow(g, "A", Double(1))

	got := aggregateValues(t, NewAvg, g)
	checkValErrs(t, "avg", got, []valErr{
		{2, 0.30000000000000004},
		{10, 0},
		{5, 0},
		{2, 0.30000000000000004},
		{2, 0.30000000000000004},
		{2, 0.30000000000000004},
	})
}

func TestMin(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1), "speed", Double(3).WithError(0.3))
	addRow(g, "A", Double(1), "speed", Double(1).WithError(0.1))
	addRow(g, "A", Double(1), "speed", Double(2).WithError(0.2))
	addRow(g, "A", Double(2), "speed", Double(-4))

	got := aggregateValues(t, NewMin, g)
	checkValErrs(t, "min", got, []valErr{{1, 0.1}, {1, 0.1}, {1, 0.1}, {-4, 0}})
}

func TestMax(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1), "speed", Double(1).WithError(0.1))
	addRow(g, "A", Double(1), "speed", Double(5).WithError(0.5))
	addRow(g, "A", Double(1), "speed", Integer(3).WithError(0.3))
	addRow(g, "B", Double(1), "speed", Double(2))

	got := aggregateValues(t, NewMax, g)
	checkValErrs(t, "max", got, []valErr{{5, 0.5}, {5, 0.5}, {5, 0.5}, {2, 0}})
}

// Max starts from the smallest positive float64, so it never selects a
// negative value. This pins that behavior.
func TestMaxAllNegative(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1), "speed", Double(-5).WithError(0.5))
	addRow(g, "A", Double(1), "speed", Double(-2).WithError(0.2))

	got := aggregateValues(t, NewMax, g)
	s := math.SmallestNonzeroFloat64
	checkValErrs(t, "max", got, []valErr{{s, 0}, {s, 0}})
}

func TestAggregateNoNumbers(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1), "speed", String("x"))
	addRow(g, "A", Double(2), "speed", Double(4))
	for _, f := range []func() Function{NewAvg, NewMax, NewMin} {
		got := aggregateValues(t, f, g)
		checkValErrs(t, "aggregate", got, []valErr{{math.NaN(), math.NaN()}, {4, 0}})
	}
}

func TestAggregateName(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1), "col", Double(1))
	for _, test := range []struct {
		f    func() Function
		want string
	}{
		{NewAvg, "avg(col)"},
		{NewMax, "max(col)"},
		{NewMin, "min(col)"},
	} {
		f := mustBind(t, test.f(), NewVariable("col", Numeric))
		if name := mustEval(t, f, g); name != test.want {
			t.Errorf("name = %q, want %q", name, test.want)
		}
	}
}

func TestAggregateStringXValues(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", String("small"), "speed", Double(1))
	addRow(g, "A", String("large"), "speed", Double(10))
	addRow(g, "A", String("small"), "speed", Double(3))
	got := aggregateValues(t, NewAvg, g)
	checkValErrs(t, "avg", got, []valErr{{2, 0}, {10, 0}, {2, 0}})
}
