// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnbound is the cause of an EvalError raised by evaluating a
	// Function that has not been bound to its arguments.
	ErrUnbound = errors.New("function is not bound")

	// ErrMissingColumn is the cause of an EvalError raised when a
	// referenced column does not exist in the grid.
	ErrMissingColumn = errors.New("no such column")

	// ErrNotNumeric is the cause of an EvalError raised when a numeric
	// operation reads a value that is not a number.
	ErrNotNumeric = errors.New("value is not numeric")
)

// A BindError reports that a Function could not be bound to the given
// arguments: the wrong number of arguments, an argument whose types
// cannot satisfy a parameter, or an argument of the wrong node kind.
//
// BindErrors are user errors in a formula and are always recoverable.
// A Function that fails to bind is left as it was.
type BindError struct {
	Func string // function symbol, e.g. "avg"

	// Pos is the 0-based argument position at fault,
	// or -1 if the number of arguments is wrong.
	Pos int

	// Want and Got are the expected and actual argument types at Pos.
	// They are empty for arity and node kind errors.
	Want, Got KindSet

	Msg string
}

func (e *BindError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %s", e.Func, e.Msg)
	}
	if e.Want.IsEmpty() {
		return fmt.Sprintf("%s: argument %d: %s", e.Func, e.Pos+1, e.Msg)
	}
	return fmt.Sprintf("%s: argument %d: %s: expected %s, found %s", e.Func, e.Pos+1, e.Msg, e.Want, e.Got)
}

// An EvalError reports a failure evaluating a column of a grid.
// It aborts evaluation of the whole tree.
type EvalError struct {
	Column string // column being computed
	Row    int    // 0-based row index, or -1 if not specific to a row
	Err    error
}

func (e *EvalError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("evaluating %s: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("evaluating %s: row %d: %v", e.Column, e.Row, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
