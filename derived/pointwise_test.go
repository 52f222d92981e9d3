// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func mustBind(t *testing.T, f Function, args ...DerivedData) Function {
	t.Helper()
	if err := f.Bind(args...); err != nil {
		t.Fatal(err)
	}
	return f
}

func mustEval(t *testing.T, d DerivedData, g *Grid) string {
	t.Helper()
	name, err := d.Evaluate(g)
	if err != nil {
		t.Fatal(err)
	}
	return name
}

func TestUnaryMath(t *testing.T) {
	for _, test := range []struct {
		f    func() Function
		in   Value
		want float64
	}{
		{NewAbs, Double(-2.5), 2.5},
		{NewAbs, Integer(-4), 4},
		{NewSin, Double(math.Pi / 2), math.Sin(math.Pi / 2)},
		{NewCos, Double(0), 1},
		{NewCos, Integer(0), 1},
	} {
		g := NewGrid()
		in := test.in.WithError(0.25).WithCount(7).WithPauseCount(1).WithRank(RankSecondary)
		addRow(g, "A", Double(1), "angle", in)
		f := mustBind(t, test.f(), NewVariable("angle", Numeric))
		name := mustEval(t, f, g)
		if want := f.Symbol() + "(angle)"; name != want {
			t.Errorf("name = %q, want %q", name, want)
		}
		got, ok := g.Rows()[0].YValue(name)
		if !ok {
			t.Fatalf("%s: no value", name)
		}
		if x, _ := got.Float(); x != test.want || got.Kind() != KindDouble {
			t.Errorf("%s(%v) = %v, want %v", f.Symbol(), test.in, got, test.want)
		}
		// Error and other statistics pass through untouched.
		if e, _ := got.Error(); e != 0.25 {
			t.Errorf("%s: error = %v, want 0.25", name, e)
		}
		if n, _ := got.Count(); n != 7 {
			t.Errorf("%s: count = %v, want 7", name, n)
		}
		if n, _ := got.PauseCount(); n != 1 {
			t.Errorf("%s: pause count = %v, want 1", name, n)
		}
		if got.Rank() != RankSecondary {
			t.Errorf("%s: rank = %v, want secondary", name, got.Rank())
		}
	}
}

func TestUnaryMathNotNumeric(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1), "v", Double(1))
	addRow(g, "A", Double(2), "v", String("fast"))
	f := mustBind(t, NewAbs(), NewVariable("v", AnyKind))
	_, err := f.Evaluate(g)
	var ee *EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("got %v, want *EvalError", err)
	}
	if ee.Row != 1 || ee.Column != "abs(v)" || !errors.Is(err, ErrNotNumeric) {
		t.Errorf("got %+v", ee)
	}
}

func TestUnaryMathAbsent(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1), "v", Double(-1))
	addRow(g, "A", Double(2))
	addRow(g, "A", Double(3), "v", Value{})
	f := mustBind(t, NewAbs(), NewVariable("v", Numeric))
	name := mustEval(t, f, g)
	if got, want := column(g, name), []interface{}{"1", nil, nil}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIfeq(t *testing.T) {
	for _, test := range []struct {
		lhs, rhs DerivedData
		want     float64
	}{
		{NewConstant(Double(3)), NewConstant(Integer(3)), 1},
		{NewConstant(Integer(3)), NewConstant(Double(3.5)), 0},
		{NewConstant(String("a")), NewConstant(String("b")), 0},
		{NewConstant(String("a")), NewConstant(String("a")), 1},
		{NewConstant(String("3")), NewConstant(Integer(3)), 0},
		{NewVariable("x", Numeric), NewVariable("x", Numeric), 1},
	} {
		g := NewGrid()
		addRow(g, "A", Double(1), "x", Double(-0.125))
		addRow(g, "A", Double(2), "x", Integer(9))
		f := mustBind(t, NewIfeq(), test.lhs, test.rhs)
		name := mustEval(t, f, g)
		for i, row := range g.Rows() {
			got, ok := row.YValue(name)
			if !ok {
				t.Fatalf("%s: row %d has no value", name, i)
			}
			if x, _ := got.Float(); x != test.want {
				t.Errorf("%s: row %d = %v, want %v", name, i, got, test.want)
			}
			if e, ok := got.Error(); !ok || e != 0 {
				t.Errorf("%s: row %d error = %v, %v; want 0, true", name, i, e, ok)
			}
		}
	}
}

func TestIfeqName(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1), "a", Double(1), "b", Double(2))
	f := mustBind(t, NewIfeq(), NewVariable("a", Numeric), NewVariable("b", Numeric))
	if name := mustEval(t, f, g); name != "ifeq(a, b)" {
		t.Errorf("name = %q, want %q", name, "ifeq(a, b)")
	}
}

func TestConstantColumns(t *testing.T) {
	g := NewGrid()
	addRow(g, "A", Double(1))
	addRow(g, "B", Double(2))
	for _, test := range []struct {
		v    Value
		name string
	}{
		{Double(3), "3.0"},
		{Integer(3), "3"},
		{String("a"), `"a"`},
	} {
		name := mustEval(t, NewConstant(test.v), g)
		if name != test.name {
			t.Errorf("%v: name = %q, want %q", test.v, name, test.name)
		}
		for _, v := range g.Column(name) {
			if !v.Equal(test.v) {
				t.Errorf("%v: column holds %v", test.v, v)
			}
		}
	}
}
