// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

var orOp = &pointwiseOp{
	sig: signature{"or", []param{
		{"first", AnyKind, variableNode},
		{"second", AnyKind, variableNode},
	}},
	returns: func(args []DerivedData) KindSet {
		if args == nil {
			return AnyKind
		}
		return args[0].ReturnTypes().Union(args[1].ReturnTypes())
	},
	apply: func(args []Value) (Value, bool, error) {
		for _, v := range args {
			if !v.IsNull() {
				return v, true, nil
			}
		}
		return Value{}, false, nil
	},
}

// NewOr returns an unbound or(first, second) Function. On each row it is
// first's value if that is present and not null, and otherwise second's.
// Both arguments must be Variables.
func NewOr() Function { return &pointwise{op: orOp} }
