// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

// DerivedData is a node of a derived-data expression tree.
type DerivedData interface {
	// Evaluate ensures that the column computed by this node exists on
	// the rows of g and returns the column's name.
	//
	// Evaluating a Function first evaluates its arguments. Evaluating
	// the same node against the same grid again returns the same name
	// and leaves the column unchanged.
	Evaluate(g *Grid) (string, error)

	// ReturnTypes returns the set of Kinds this node's values may have.
	// It is used to check arguments when binding Functions.
	ReturnTypes() KindSet
}

// A Variable is a leaf naming a measured result column of a grid.
type Variable struct {
	name  string
	kinds KindSet
}

// NewVariable returns a Variable referring to column name, whose values
// have kinds.
func NewVariable(name string, kinds KindSet) *Variable {
	return &Variable{name, kinds}
}

// Name returns the column name v refers to.
func (v *Variable) Name() string { return v.name }

func (v *Variable) ReturnTypes() KindSet {
	if v == nil {
		return 0
	}
	return v.kinds
}

// Evaluate returns v's column name. It fails if g has rows but none of
// them carries that column.
func (v *Variable) Evaluate(g *Grid) (string, error) {
	return checkColumn(g, v.name)
}

func (v *Variable) String() string { return v.name }

// A Property is a leaf naming a run parameter column of a grid.
//
// Properties evaluate exactly like Variables. They are a distinct node
// kind because some Functions only accept one or the other.
type Property struct {
	name  string
	kinds KindSet
}

// NewProperty returns a Property referring to column name, whose values
// have kinds.
func NewProperty(name string, kinds KindSet) *Property {
	return &Property{name, kinds}
}

// Name returns the column name p refers to.
func (p *Property) Name() string { return p.name }

func (p *Property) ReturnTypes() KindSet {
	if p == nil {
		return 0
	}
	return p.kinds
}

// Evaluate returns p's column name. It fails if g has rows but none of
// them carries that column.
func (p *Property) Evaluate(g *Grid) (string, error) {
	return checkColumn(g, p.name)
}

func (p *Property) String() string { return p.name }

func checkColumn(g *Grid, name string) (string, error) {
	if g.Len() > 0 && !g.HasColumn(name) {
		return "", &EvalError{name, -1, ErrMissingColumn}
	}
	return name, nil
}

// A Constant is a literal leaf.
type Constant struct {
	val Value
}

// NewConstant returns a Constant holding v.
func NewConstant(v Value) *Constant {
	return &Constant{v}
}

// Value returns the literal held by c.
func (c *Constant) Value() Value { return c.val }

func (c *Constant) ReturnTypes() KindSet {
	if c == nil {
		return 0
	}
	return Kinds(c.val.kind)
}

// Evaluate stores c's literal in every row of g under a column named by
// the literal's text, such as "3.0", "3", or `"a"`, and returns that
// name.
func (c *Constant) Evaluate(g *Grid) (string, error) {
	name := c.val.literal()
	if g.isComputed(name) {
		return name, nil
	}
	for _, row := range g.rows {
		row.SetYValue(name, c.val)
	}
	g.markComputed(name)
	return name, nil
}

func (c *Constant) String() string { return c.val.literal() }
