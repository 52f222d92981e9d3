// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import "strings"

// Tidy converts a value in a possibly pre-scaled unit to base units.
// Nanoseconds become seconds and megabytes become bytes, but only in
// the numerator of the unit, so "ns/op" becomes "sec/op" while
// "ops/ns" is left alone.
func Tidy(value float64, unit string) (float64, string) {
	switch unit {
	case "ns/op":
		return value * 1e-9, "sec/op"
	case "MB/s":
		return value * 1e6, "B/s"
	case "B/op", "allocs/op":
		return value, unit
	}
	if !strings.Contains(unit, "ns") && !strings.Contains(unit, "MB") {
		return value, unit
	}

	var buf strings.Builder
	denom := false
	for len(unit) > 0 {
		// Copy separators, tracking whether we're in the denominator.
		i := strings.IndexAny(unit, "*/- \t")
		if i == 0 {
			switch unit[0] {
			case '/':
				denom = true
			case '*':
				denom = false
			}
			buf.WriteByte(unit[0])
			unit = unit[1:]
			continue
		}
		if i < 0 {
			i = len(unit)
		}
		tok := unit[:i]
		unit = unit[i:]
		switch {
		case tok == "ns" && !denom:
			buf.WriteString("sec")
			value /= 1e9
		case tok == "MB" && !denom:
			buf.WriteString("B")
			value *= 1e6
		default:
			buf.WriteString(tok)
		}
	}
	return value, buf.String()
}
