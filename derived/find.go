// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

// find selects, for each x-value, the value of one column on the first
// row where another column equals a constant.
type find struct {
	sel, where DerivedData
	constant   *Constant
}

var findSig = signature{"find", []param{
	{"select", AnyKind, variableOrFunctionNode},
	{"where", AnyKind, variableOrPropertyNode},
	{"constant", AnyKind, constantNode},
}}

// NewFind returns an unbound find(select, where, constant) Function.
//
// For each distinct x-value in the grid, regardless of series, find
// scans the rows in grid order for the first row whose where column
// equals constant, and gives that row's select value to every row with
// that x-value. Rows at x-values with no such row get no value. The
// result therefore depends on the order of the grid's rows.
func NewFind() Function { return new(find) }

func (f *find) signature() *signature { return &findSig }

func (f *find) Symbol() string { return findSig.symbol }

func (f *find) Bind(args ...DerivedData) error {
	if err := findSig.check(args); err != nil {
		return err
	}
	f.sel, f.where, f.constant = args[0], args[1], args[2].(*Constant)
	return nil
}

func (f *find) Args() []DerivedData {
	if f.sel == nil {
		return nil
	}
	return []DerivedData{f.sel, f.where, f.constant}
}

func (f *find) NewInstance() Function { return new(find) }

func (f *find) ReturnTypes() KindSet {
	if f.sel == nil {
		return AnyKind
	}
	return f.sel.ReturnTypes()
}

func (f *find) String() string { return describe(findSig.symbol, f.Args()) }

func (f *find) Evaluate(g *Grid) (string, error) {
	if f.sel == nil {
		return "", &EvalError{findSig.symbol, -1, ErrUnbound}
	}
	selCol, err := f.sel.Evaluate(g)
	if err != nil {
		return "", err
	}
	whereCol, err := f.where.Evaluate(g)
	if err != nil {
		return "", err
	}
	want := f.constant.Value()
	name := canonicalName(findSig.symbol, []string{selCol, whereCol, want.literal()})
	if g.isComputed(name) {
		return name, nil
	}

	// The first matching row for an x-value wins, even if it has no
	// select value.
	matched := make(map[valueKey]bool)
	found := make(map[valueKey]Value)
	for _, row := range g.rows {
		k := row.x.key()
		if matched[k] {
			continue
		}
		if w, ok := row.ys[whereCol]; !ok || !w.Equal(want) {
			continue
		}
		matched[k] = true
		if v, ok := row.ys[selCol]; ok {
			found[k] = v
		}
	}

	for _, row := range g.rows {
		if v, ok := found[row.x.key()]; ok {
			row.SetYValue(name, v)
		}
	}
	g.markComputed(name)
	return name, nil
}
