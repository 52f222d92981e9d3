// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derived

import "strings"

// A SeriesGroup identifies the plotted line a row belongs to.
//
// SeriesGroups are identified solely by name: two SeriesGroups are ==
// if and only if their names are equal.
type SeriesGroup struct {
	name string
}

// NewSeriesGroup returns the SeriesGroup named name.
func NewSeriesGroup(name string) SeriesGroup {
	return SeriesGroup{name}
}

// Name returns the display name of g.
func (g SeriesGroup) Name() string {
	return g.name
}

func (g SeriesGroup) String() string {
	return g.name
}

// Compare orders SeriesGroups by name. It returns -1, 0, or 1.
func (g SeriesGroup) Compare(h SeriesGroup) int {
	return strings.Compare(g.name, h.name)
}
