// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package derived evaluates derived quantities over a grid of benchmark
// measurements.
//
// A derived quantity is a small expression tree of DerivedData nodes.
// Leaves name existing columns of a Grid (Variables and Properties) or
// supply literals (Constants). Interior nodes are Functions, which are
// bound to their arguments once and can then be evaluated against any
// number of Grids. Evaluating a node materializes one more named column
// on every row of the Grid and returns that column's name.
//
// Functions come in two evaluation strategies. Pointwise functions
// (abs, sin, cos, ifeq, or) compute each row from that row alone.
// Aggregate functions (avg, max, min) group rows by series and x-value,
// fold each group, and broadcast the group's result back to each of its
// rows. The find function selects a value across rows sharing an x-value.
package derived

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Kind is the type of the raw value held by a Value.
type Kind uint8

const (
	kindNull Kind = iota

	KindDouble
	KindInteger
	KindString
)

func (k Kind) String() string {
	switch k {
	case kindNull:
		return "Null"
	case KindDouble:
		return "Double"
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A KindSet is a set of Kinds.
type KindSet uint8

// Kinds returns the set containing ks.
func Kinds(ks ...Kind) KindSet {
	var s KindSet
	for _, k := range ks {
		if k != kindNull {
			s |= 1 << k
		}
	}
	return s
}

// Commonly used kind sets.
var (
	Numeric    = Kinds(KindDouble, KindInteger)
	AnyKind    = Kinds(KindDouble, KindInteger, KindString)
	DoubleOnly = Kinds(KindDouble)
)

// Has reports whether k is in s.
func (s KindSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

// Overlaps reports whether s and t have at least one Kind in common.
func (s KindSet) Overlaps(t KindSet) bool {
	return s&t != 0
}

// Union returns the union of s and t.
func (s KindSet) Union(t KindSet) KindSet {
	return s | t
}

// IsEmpty reports whether s contains no Kinds.
func (s KindSet) IsEmpty() bool {
	return s == 0
}

// String returns s as, for example, "{Double,Integer}".
func (s KindSet) String() string {
	var parts []string
	for _, k := range []Kind{KindDouble, KindInteger, KindString} {
		if s.Has(k) {
			parts = append(parts, k.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// A Rank tags a Value with the role of the measurement it came from.
type Rank uint8

const (
	RankNone Rank = iota
	// RankPrimary marks the primary measurement of a run.
	RankPrimary
	// RankSecondary marks any other measurement of a run.
	RankSecondary
)

func (r Rank) String() string {
	switch r {
	case RankNone:
		return "none"
	case RankPrimary:
		return "primary"
	case RankSecondary:
		return "secondary"
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// A Value is a single measurement cell: a double, integer, or string,
// plus optional statistics about how it was measured.
//
// Values are immutable. Methods that "update" a Value return a new one.
// The zero Value is null.
type Value struct {
	kind Kind
	f    float64
	i    int64
	s    string

	// Ancillary statistics. The has bits record which are set.
	has        statBits
	err        float64
	count      int64
	pauseCount int64
	rank       Rank
}

type statBits uint8

const (
	hasError statBits = 1 << iota
	hasCount
	hasPauseCount
)

// Double returns a Value holding f.
func Double(f float64) Value {
	return Value{kind: KindDouble, f: f}
}

// Integer returns a Value holding i.
func Integer(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

// String returns a Value holding s.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// ParseValue converts s to an Integer if it is a valid int64, otherwise
// to a Double if it is a valid float64, otherwise to a String.
func ParseValue(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Double(f)
	}
	return String(s)
}

// Kind returns the kind of v's raw value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool {
	return v.kind == kindNull
}

// Float returns v as a float64 if v is a Double or an Integer.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindDouble:
		return v.f, true
	case KindInteger:
		return float64(v.i), true
	}
	return 0, false
}

// Int returns v's raw value if v is an Integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// Str returns v's raw value if v is a String.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

// Error returns the measurement error of v, if known.
func (v Value) Error() (float64, bool) {
	return v.err, v.has&hasError != 0
}

// Count returns the number of samples v was computed from, if known.
func (v Value) Count() (int64, bool) {
	return v.count, v.has&hasCount != 0
}

// PauseCount returns the number of pauses observed while measuring v,
// if known.
func (v Value) PauseCount() (int64, bool) {
	return v.pauseCount, v.has&hasPauseCount != 0
}

// Rank returns v's rank tag.
func (v Value) Rank() Rank {
	return v.rank
}

// WithError returns a copy of v with its error set to err.
func (v Value) WithError(err float64) Value {
	v.err = err
	v.has |= hasError
	return v
}

// WithCount returns a copy of v with its sample count set to n.
func (v Value) WithCount(n int64) Value {
	v.count = n
	v.has |= hasCount
	return v
}

// WithPauseCount returns a copy of v with its pause count set to n.
func (v Value) WithPauseCount(n int64) Value {
	v.pauseCount = n
	v.has |= hasPauseCount
	return v
}

// WithRank returns a copy of v with its rank set to r.
func (v Value) WithRank(r Rank) Value {
	v.rank = r
	return v
}

// withDouble returns a copy of v whose raw value is replaced by f.
// Error, count, pause count, and rank are carried over unchanged.
func (v Value) withDouble(f float64) Value {
	v.kind = KindDouble
	v.f, v.i, v.s = f, 0, ""
	return v
}

// Equal reports whether v and w hold equal raw values. Ancillary
// statistics are ignored. Doubles compare by their bit patterns, so
// there is no tolerance and NaN equals NaN.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindDouble:
		return math.Float64bits(v.f) == math.Float64bits(w.f)
	case KindInteger:
		return v.i == w.i
	case KindString:
		return v.s == w.s
	}
	return true
}

// key returns a comparable representation of v's raw value suitable for
// use in a map key. Two Values have the same key iff they are Equal.
func (v Value) key() valueKey {
	switch v.kind {
	case KindDouble:
		return valueKey{kind: v.kind, bits: math.Float64bits(v.f)}
	case KindInteger:
		return valueKey{kind: v.kind, bits: uint64(v.i)}
	case KindString:
		return valueKey{kind: v.kind, s: v.s}
	}
	return valueKey{}
}

type valueKey struct {
	kind Kind
	bits uint64
	s    string
}

// String returns the raw value of v formatted for display.
func (v Value) String() string {
	switch v.kind {
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	}
	return "<null>"
}

// literal returns v formatted so that values of different kinds never
// produce the same text: doubles always carry a decimal point or
// exponent and strings are quoted.
func (v Value) literal() string {
	switch v.kind {
	case KindDouble:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	case KindString:
		return strconv.Quote(v.s)
	}
	return v.String()
}
