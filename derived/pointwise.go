// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import (
	"math"

	"github.com/pkg/errors"
)

// A pointwiseOp describes a kind of pointwise Function: one that
// computes each row's result from that row's argument values alone.
type pointwiseOp struct {
	sig signature

	// returns computes the function's return types from its bound
	// arguments.
	returns func(args []DerivedData) KindSet

	// apply computes the result for one row. args holds the row's
	// argument values, with the null Value for absent ones. If ok is
	// false, the row gets no value.
	apply func(args []Value) (v Value, ok bool, err error)
}

// pointwise is a Function evaluated row by row.
type pointwise struct {
	op   *pointwiseOp
	args []DerivedData
}

func (f *pointwise) signature() *signature { return &f.op.sig }

func (f *pointwise) Symbol() string { return f.op.sig.symbol }

func (f *pointwise) Bind(args ...DerivedData) error {
	if err := f.op.sig.check(args); err != nil {
		return err
	}
	f.args = append([]DerivedData(nil), args...)
	return nil
}

func (f *pointwise) Args() []DerivedData { return append([]DerivedData(nil), f.args...) }

func (f *pointwise) NewInstance() Function { return &pointwise{op: f.op} }

func (f *pointwise) ReturnTypes() KindSet { return f.op.returns(f.args) }

func (f *pointwise) String() string { return describe(f.op.sig.symbol, f.args) }

func (f *pointwise) Evaluate(g *Grid) (string, error) {
	if f.args == nil {
		return "", &EvalError{f.op.sig.symbol, -1, ErrUnbound}
	}
	cols, err := evalArgs(g, f.args)
	if err != nil {
		return "", err
	}
	name := canonicalName(f.op.sig.symbol, cols)
	if g.isComputed(name) {
		return name, nil
	}

	vals := make([]Value, len(cols))
	for i, row := range g.rows {
		for j, col := range cols {
			vals[j] = row.ys[col]
		}
		v, ok, err := f.op.apply(vals)
		if err != nil {
			return "", &EvalError{name, i, err}
		}
		if ok {
			row.SetYValue(name, v)
		}
	}
	g.markComputed(name)
	return name, nil
}

func fixedReturn(s KindSet) func([]DerivedData) KindSet {
	return func([]DerivedData) KindSet { return s }
}

// unaryMath returns an apply function that replaces a numeric value by
// fn of that value. The error, count, pause count, and rank of the input
// are kept as they are, even though fn may be nonlinear.
func unaryMath(fn func(float64) float64) func([]Value) (Value, bool, error) {
	return func(args []Value) (Value, bool, error) {
		v := args[0]
		if v.IsNull() {
			return Value{}, false, nil
		}
		x, ok := v.Float()
		if !ok {
			return Value{}, false, errors.Wrapf(ErrNotNumeric, "%s %q", v.kind, v)
		}
		return v.withDouble(fn(x)), true, nil
	}
}

func unaryMathOp(symbol string, fn func(float64) float64) *pointwiseOp {
	return &pointwiseOp{
		sig:     signature{symbol, []param{{"x", Numeric, anyNode}}},
		returns: fixedReturn(DoubleOnly),
		apply:   unaryMath(fn),
	}
}

var (
	absOp = unaryMathOp("abs", math.Abs)
	sinOp = unaryMathOp("sin", math.Sin)
	cosOp = unaryMathOp("cos", math.Cos)
)

// NewAbs returns an unbound abs(x) Function, the absolute value of x.
func NewAbs() Function { return &pointwise{op: absOp} }

// NewSin returns an unbound sin(x) Function, the sine of x radians.
func NewSin() Function { return &pointwise{op: sinOp} }

// NewCos returns an unbound cos(x) Function, the cosine of x radians.
func NewCos() Function { return &pointwise{op: cosOp} }

var ifeqOp = &pointwiseOp{
	sig: signature{"ifeq", []param{
		{"lhs", AnyKind, anyNode},
		{"rhs", AnyKind, anyNode},
	}},
	returns: fixedReturn(DoubleOnly),
	apply: func(args []Value) (Value, bool, error) {
		lhs, rhs := args[0], args[1]
		if lhs.IsNull() || rhs.IsNull() {
			return Value{}, false, nil
		}
		var eq bool
		lf, lok := lhs.Float()
		rf, rok := rhs.Float()
		if lok && rok {
			eq = lf == rf
		} else {
			eq = lhs.Equal(rhs)
		}
		res := 0.0
		if eq {
			res = 1.0
		}
		return lhs.withDouble(res).WithError(0), true, nil
	},
}

// NewIfeq returns an unbound ifeq(lhs, rhs) Function. It is 1 on rows
// where lhs equals rhs and 0 elsewhere. Numbers compare numerically, so
// 3.0 equals 3; anything else compares by exact value.
func NewIfeq() Function { return &pointwise{op: ifeqOp} }
