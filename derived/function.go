// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import (
	"fmt"
	"sort"
	"strings"
)

// A Function is a DerivedData node computed from bound arguments.
//
// A Function is either unbound, as returned by a Catalog or
// NewInstance, or fully bound by a successful call to Bind. Evaluating
// an unbound Function fails with ErrUnbound.
//
// Binding is configuration shared by every evaluation of the Function.
// To use the same kind of Function in more than one place, or against
// more than one Grid concurrently, use NewInstance to get a private,
// unbound copy.
type Function interface {
	DerivedData

	// Symbol returns the function's name, such as "avg". It is also the
	// prefix of the canonical names of the columns it computes.
	Symbol() string

	// Bind checks args against the function's parameters and, if they
	// are acceptable, binds the function to them. If Bind returns a
	// *BindError, the function is left unchanged.
	Bind(args ...DerivedData) error

	// Args returns the bound arguments, or nil if the function is
	// unbound.
	Args() []DerivedData

	// NewInstance returns a new, unbound Function of the same kind.
	NewInstance() Function
}

// A nodeKind restricts the kind of DerivedData node accepted by a
// parameter, in addition to its value types.
type nodeKind uint8

const (
	anyNode nodeKind = iota
	variableNode
	variableOrPropertyNode
	variableOrFunctionNode
	constantNode
)

func (n nodeKind) String() string {
	switch n {
	case variableNode:
		return "a variable"
	case variableOrPropertyNode:
		return "a variable or property"
	case variableOrFunctionNode:
		return "a variable or function"
	case constantNode:
		return "a constant"
	}
	return "any expression"
}

func (n nodeKind) accepts(d DerivedData) bool {
	switch n {
	case variableNode:
		_, ok := d.(*Variable)
		return ok
	case variableOrPropertyNode:
		switch d.(type) {
		case *Variable, *Property:
			return true
		}
		return false
	case variableOrFunctionNode:
		switch d.(type) {
		case *Variable, Function:
			return true
		}
		return false
	case constantNode:
		_, ok := d.(*Constant)
		return ok
	}
	return true
}

// A param describes one positional parameter of a Function.
type param struct {
	name  string
	kinds KindSet
	node  nodeKind
}

// A signature describes the parameters of a kind of Function.
type signature struct {
	symbol string
	params []param
}

// check validates args against s. It does not modify anything.
func (s *signature) check(args []DerivedData) error {
	if len(args) != len(s.params) {
		return &BindError{
			Func: s.symbol,
			Pos:  -1,
			Msg:  fmt.Sprintf("expected %d argument%s, found %d", len(s.params), plural(len(s.params)), len(args)),
		}
	}
	for i, p := range s.params {
		arg := args[i]
		if isNilNode(arg) {
			return &BindError{Func: s.symbol, Pos: i, Msg: "missing argument"}
		}
		if !p.node.accepts(arg) {
			return &BindError{Func: s.symbol, Pos: i, Msg: fmt.Sprintf("%s must be %s", p.name, p.node)}
		}
		if got := arg.ReturnTypes(); !got.Overlaps(p.kinds) {
			return &BindError{Func: s.symbol, Pos: i, Want: p.kinds, Got: got, Msg: "wrong type for " + p.name}
		}
	}
	return nil
}

// isNilNode reports whether d is nil or a nil leaf pointer.
func isNilNode(d DerivedData) bool {
	switch d := d.(type) {
	case nil:
		return true
	case *Variable:
		return d == nil
	case *Property:
		return d == nil
	case *Constant:
		return d == nil
	}
	return false
}

// String returns s in the form "avg(x {Double,Integer})".
func (s *signature) String() string {
	var buf strings.Builder
	buf.WriteString(s.symbol)
	buf.WriteByte('(')
	for i, p := range s.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.name)
		buf.WriteByte(' ')
		buf.WriteString(p.kinds.String())
		if p.node != anyNode {
			buf.WriteString(" [")
			buf.WriteString(p.node.String())
			buf.WriteByte(']')
		}
	}
	buf.WriteByte(')')
	return buf.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// canonicalName returns the name of the column computed by function
// symbol from columns args, for example "ifeq(a, b)".
func canonicalName(symbol string, args []string) string {
	return symbol + "(" + strings.Join(args, ", ") + ")"
}

// evalArgs evaluates each argument against g and returns their column
// names.
func evalArgs(g *Grid, args []DerivedData) ([]string, error) {
	cols := make([]string, len(args))
	for i, arg := range args {
		col, err := arg.Evaluate(g)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return cols, nil
}

// describe formats a call of symbol on args for display.
func describe(symbol string, args []DerivedData) string {
	if args == nil {
		return symbol + "()"
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return symbol + "(" + strings.Join(parts, ", ") + ")"
}

// A Catalog maps function symbols to factories for unbound Functions.
//
// A formula builder looks up each function name it encounters in a
// Catalog, gets a fresh instance, and binds it to that occurrence's
// arguments.
type Catalog struct {
	factories map[string]func() Function
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]func() Function)}
}

// DefaultCatalog contains the built-in functions.
var DefaultCatalog = builtins()

func builtins() *Catalog {
	c := NewCatalog()
	c.Register("abs", NewAbs)
	c.Register("sin", NewSin)
	c.Register("cos", NewCos)
	c.Register("ifeq", NewIfeq)
	c.Register("avg", NewAvg)
	c.Register("max", NewMax)
	c.Register("min", NewMin)
	c.Register("find", NewFind)
	c.Register("or", NewOr)
	return c
}

// Register adds a kind of Function to c under symbol, replacing any
// existing registration.
func (c *Catalog) Register(symbol string, factory func() Function) {
	c.factories[symbol] = factory
}

// New returns a new unbound Function registered under symbol.
func (c *Catalog) New(symbol string) (Function, bool) {
	factory, ok := c.factories[symbol]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Symbols returns the registered symbols in sorted order.
func (c *Catalog) Symbols() []string {
	syms := make([]string, 0, len(c.factories))
	for sym := range c.factories {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// Signature returns a human-readable description of the parameters of
// the function registered under symbol.
func (c *Catalog) Signature(symbol string) (string, bool) {
	f, ok := c.New(symbol)
	if !ok {
		return "", false
	}
	if s, ok := f.(interface{ signature() *signature }); ok {
		return s.signature().String(), true
	}
	return symbol, true
}
