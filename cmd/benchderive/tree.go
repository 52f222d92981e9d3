// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"golang.org/x/benchplot/derived"
)

// A treeNode is one node of a JSON derived data tree. Exactly one of
// Fn, Var, Prop, Const, and Int is set.
type treeNode struct {
	Fn    string          `json:"fn"`
	Args  []*treeNode     `json:"args"`
	Var   *string         `json:"var"`
	Prop  *string         `json:"prop"`
	Const json.RawMessage `json:"const"`
	Int   *int64          `json:"int"`
}

// parseTree parses a JSON tree and binds it against the functions in
// cat. Leaf column types are taken from g.
func parseTree(data []byte, g *derived.Grid, cat *derived.Catalog) (derived.DerivedData, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var root treeNode
	if err := dec.Decode(&root); err != nil {
		return nil, errors.Wrap(err, "parsing expression")
	}
	return root.build(g, cat)
}

func (n *treeNode) build(g *derived.Grid, cat *derived.Catalog) (derived.DerivedData, error) {
	set := 0
	for _, ok := range []bool{n.Fn != "", n.Var != nil, n.Prop != nil, n.Const != nil, n.Int != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("each expression node must have exactly one of fn, var, prop, const, or int")
	}

	switch {
	case n.Var != nil:
		kinds, err := columnKinds(g, *n.Var)
		if err != nil {
			return nil, err
		}
		return derived.NewVariable(*n.Var, kinds), nil
	case n.Prop != nil:
		kinds, err := columnKinds(g, *n.Prop)
		if err != nil {
			return nil, err
		}
		return derived.NewProperty(*n.Prop, kinds), nil
	case n.Int != nil:
		return derived.NewConstant(derived.Integer(*n.Int)), nil
	case n.Const != nil:
		dec := json.NewDecoder(bytes.NewReader(n.Const))
		dec.UseNumber()
		var c interface{}
		if err := dec.Decode(&c); err != nil {
			return nil, errors.Wrap(err, "parsing constant")
		}
		switch c := c.(type) {
		case json.Number:
			// Parse as configuration values are, so 8 is an Integer
			// and 8.0 a Double.
			return derived.NewConstant(derived.ParseValue(c.String())), nil
		case string:
			return derived.NewConstant(derived.String(c)), nil
		}
		return nil, errors.Errorf("constant %s must be a number or string", n.Const)
	}

	f, ok := cat.New(n.Fn)
	if !ok {
		return nil, errors.Errorf("unknown function %q", n.Fn)
	}
	args := make([]derived.DerivedData, len(n.Args))
	for i, arg := range n.Args {
		if arg == nil {
			return nil, errors.Errorf("%s: argument %d is null", n.Fn, i+1)
		}
		d, err := arg.build(g, cat)
		if err != nil {
			return nil, err
		}
		args[i] = d
	}
	if err := f.Bind(args...); err != nil {
		return nil, errors.Wrap(err, "invalid arguments")
	}
	return f, nil
}

func columnKinds(g *derived.Grid, name string) (derived.KindSet, error) {
	if !g.HasColumn(name) {
		return 0, errors.Errorf("no column %q", name)
	}
	return g.ColumnKinds(name), nil
}
