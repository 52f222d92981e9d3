// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import "math"

// An accumulator folds the values of one (series, x-value) group.
//
// Each aggregate has its own accumulator because each propagates
// measurement error differently.
type accumulator interface {
	add(x, err float64)
	result() Value
}

// An aggregateOp describes a kind of aggregate Function.
type aggregateOp struct {
	sig    signature
	newAcc func() accumulator
}

// aggregate is a Function that folds the values of each (series,
// x-value) group and gives every row in the group the result.
type aggregate struct {
	op  *aggregateOp
	arg DerivedData
}

func (f *aggregate) signature() *signature { return &f.op.sig }

func (f *aggregate) Symbol() string { return f.op.sig.symbol }

func (f *aggregate) Bind(args ...DerivedData) error {
	if err := f.op.sig.check(args); err != nil {
		return err
	}
	f.arg = args[0]
	return nil
}

func (f *aggregate) Args() []DerivedData {
	if f.arg == nil {
		return nil
	}
	return []DerivedData{f.arg}
}

func (f *aggregate) NewInstance() Function { return &aggregate{op: f.op} }

func (f *aggregate) ReturnTypes() KindSet { return DoubleOnly }

func (f *aggregate) String() string { return describe(f.op.sig.symbol, f.Args()) }

// Evaluate makes two passes over g. Rows of a group need not be
// adjacent, so every group must be complete before any result is
// written.
func (f *aggregate) Evaluate(g *Grid) (string, error) {
	if f.arg == nil {
		return "", &EvalError{f.op.sig.symbol, -1, ErrUnbound}
	}
	col, err := f.arg.Evaluate(g)
	if err != nil {
		return "", err
	}
	name := canonicalName(f.op.sig.symbol, []string{col})
	if g.isComputed(name) {
		return name, nil
	}

	// Gather. Rows without a numeric value are left out of their group.
	accs := make(map[groupKey]accumulator)
	for _, row := range g.rows {
		v, ok := row.ys[col]
		if !ok {
			continue
		}
		x, ok := v.Float()
		if !ok {
			continue
		}
		e, _ := v.Error()
		k := row.groupKey()
		acc := accs[k]
		if acc == nil {
			acc = f.op.newAcc()
			accs[k] = acc
		}
		acc.add(x, e)
	}

	// Broadcast.
	for _, row := range g.rows {
		if acc := accs[row.groupKey()]; acc != nil {
			row.SetYValue(name, acc.result())
		}
	}
	g.markComputed(name)
	return name, nil
}

func aggregateSig(symbol string) signature {
	return signature{symbol, []param{{"x", Numeric, anyNode}}}
}

// avgAcc averages values and, separately and linearly, their errors.
type avgAcc struct {
	sum, sumErr float64
	n           int
}

func (a *avgAcc) add(x, err float64) {
	a.sum += x
	a.sumErr += err
	a.n++
}

func (a *avgAcc) result() Value {
	n := float64(a.n)
	return Double(a.sum / n).WithError(a.sumErr / n)
}

// maxAcc tracks the largest value and the error of the row it came from.
//
// The running maximum starts at the smallest positive float64, so a
// group of only negative values yields that starting value.
type maxAcc struct {
	best, err float64
}

func (a *maxAcc) add(x, err float64) {
	if x > a.best {
		a.best, a.err = x, err
	}
}

func (a *maxAcc) result() Value {
	return Double(a.best).WithError(a.err)
}

// minAcc tracks the smallest value and the error of the row it came from.
type minAcc struct {
	best, err float64
}

func (a *minAcc) add(x, err float64) {
	if x < a.best {
		a.best, a.err = x, err
	}
}

func (a *minAcc) result() Value {
	return Double(a.best).WithError(a.err)
}

var (
	avgOp = &aggregateOp{aggregateSig("avg"), func() accumulator { return new(avgAcc) }}
	maxOp = &aggregateOp{aggregateSig("max"), func() accumulator { return &maxAcc{best: math.SmallestNonzeroFloat64} }}
	minOp = &aggregateOp{aggregateSig("min"), func() accumulator { return &minAcc{best: math.MaxFloat64} }}
)

// NewAvg returns an unbound avg(x) Function: the mean of x over each
// series at each x-value. The result's error is the mean of the errors.
func NewAvg() Function { return &aggregate{op: avgOp} }

// NewMax returns an unbound max(x) Function: the largest x in each
// series at each x-value, with that row's error.
func NewMax() Function { return &aggregate{op: maxOp} }

// NewMin returns an unbound min(x) Function: the smallest x in each
// series at each x-value, with that row's error.
func NewMin() Function { return &aggregate{op: minOp} }
