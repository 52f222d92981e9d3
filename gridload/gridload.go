// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gridload builds derived.Grids from benchmark runs.
//
// Each run becomes a row. The row's x-value is taken from a
// configuration key, its series from a list of other keys, and its
// columns from the run's measurements (named by unit) and its
// configuration. Optionally, runs that share a series, x-value, and
// benchmark are collapsed into a single row that summarizes their
// measurements.
package gridload

import (
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"

	"golang.org/x/benchplot/benchrun"
	"golang.org/x/benchplot/derived"
)

// Options controls how a Loader maps runs to grid rows.
type Options struct {
	// X is the configuration key that supplies each row's x-value.
	// The value is parsed with derived.ParseValue. Runs without this
	// key are skipped with a warning.
	X string

	// Series lists the configuration keys whose values name a row's
	// series, as space-separated "key:value" pairs. If Series is
	// empty, the benchmark's base name names the series.
	Series []string

	// Match restricts loading to runs whose configuration has the
	// given value for every key.
	Match map[string]string

	// Collapse merges runs with the same series, x-value, and base
	// name into one row. Each measurement becomes the mean of the
	// merged samples with the half-width of its confidence interval
	// as its error.
	Collapse bool

	// Confidence is the confidence level of collapsed intervals.
	Confidence float64
}

// DefaultOptions returns the default loading options: the x-value is
// the benchmark's sub-name GOMAXPROCS and intervals are 95%.
func DefaultOptions() Options {
	return Options{
		X:          "/gomaxprocs",
		Confidence: 0.95,
	}
}

// A Scanner is a source of benchmark records, such as a
// *benchrun.Reader or *benchrun.Files.
type Scanner interface {
	Scan() bool
	Record() benchrun.Record
	Err() error
}

// A Column describes one column of a loaded grid.
type Column struct {
	Name string

	// Variable is true for measurement columns and false for
	// configuration (property) columns.
	Variable bool

	// Kinds is the set of kinds present in the column.
	Kinds derived.KindSet
}

// A Loader accumulates runs and builds a grid from them.
type Loader struct {
	opts     Options
	runs     []loadedRun
	units    map[string]bool
	warnings []error
	grid     *derived.Grid
}

type loadedRun struct {
	run    *benchrun.Run
	x      derived.Value
	series derived.SeriesGroup
}

// NewLoader returns a Loader with the given options.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts, units: make(map[string]bool)}
}

// Load reads every record from s into a new Loader. Syntax errors in
// the input are recorded as warnings. The returned error is the
// Scanner's I/O error, if any.
func Load(s Scanner, opts Options) (*Loader, error) {
	l := NewLoader(opts)
	for s.Scan() {
		switch rec := s.Record().(type) {
		case *benchrun.Run:
			l.Add(rec)
		case *benchrun.SyntaxError:
			l.warnings = append(l.warnings, rec)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading benchmarks")
	}
	return l, nil
}

// Add adds run to the Loader. Add must not be called after Grid.
func (l *Loader) Add(run *benchrun.Run) {
	if l.grid != nil {
		panic("gridload: Add called after Grid")
	}
	for key, want := range l.opts.Match {
		if got, _ := run.Get(key); got != want {
			return
		}
	}
	xs, ok := run.Get(l.opts.X)
	if !ok {
		file, line := run.Pos()
		l.warnings = append(l.warnings, errors.Errorf("%s:%d: %s has no %s configuration; skipping", file, line, run.Name, l.opts.X))
		return
	}
	l.runs = append(l.runs, loadedRun{run, derived.ParseValue(xs), l.seriesOf(run)})
	for _, m := range run.Measurements {
		l.units[m.Unit] = true
	}
}

func (l *Loader) seriesOf(run *benchrun.Run) derived.SeriesGroup {
	if len(l.opts.Series) == 0 {
		return derived.NewSeriesGroup(run.Base())
	}
	parts := make([]string, len(l.opts.Series))
	for i, key := range l.opts.Series {
		val, _ := run.Get(key)
		parts[i] = key + ":" + val
	}
	return derived.NewSeriesGroup(strings.Join(parts, " "))
}

// Warnings returns the non-fatal problems found while loading: syntax
// errors and skipped runs.
func (l *Loader) Warnings() []error {
	return l.warnings
}

// Grid returns the grid built from the runs added so far. The grid is
// built on the first call; later calls return the same grid.
func (l *Loader) Grid() *derived.Grid {
	if l.grid != nil {
		return l.grid
	}
	l.grid = derived.NewGrid()
	if l.opts.Collapse {
		l.buildCollapsed()
	} else {
		for _, lr := range l.runs {
			row := l.grid.AddRow(lr.x, lr.series)
			setConfig(row, lr.run)
			for i, m := range lr.run.Measurements {
				v := derived.Double(m.Value).WithCount(int64(lr.run.Iters)).WithRank(rankOf(i))
				row.SetYValue(m.Unit, v)
			}
		}
	}
	return l.grid
}

func setConfig(row *derived.Row, run *benchrun.Run) {
	for _, cfg := range run.AllConfig() {
		row.SetYValue(cfg.Key, derived.ParseValue(cfg.Value))
	}
}

func rankOf(i int) derived.Rank {
	if i == 0 {
		return derived.RankPrimary
	}
	return derived.RankSecondary
}

type collapseKey struct {
	series string
	xKind  derived.Kind
	x      string
	base   string
}

type collapsed struct {
	first *loadedRun
	units []string
	rank  map[string]derived.Rank
	xs    map[string][]float64
	iters map[string]int64
}

// buildCollapsed adds one row per (series, x, base name) group in order
// of each group's first run. The row's configuration is that of the
// group's first run.
func (l *Loader) buildCollapsed() {
	groups := make(map[collapseKey]*collapsed)
	var order []*collapsed
	for i := range l.runs {
		lr := &l.runs[i]
		key := collapseKey{lr.series.Name(), lr.x.Kind(), lr.x.String(), lr.run.Base()}
		c := groups[key]
		if c == nil {
			c = &collapsed{
				first: lr,
				rank:  make(map[string]derived.Rank),
				xs:    make(map[string][]float64),
				iters: make(map[string]int64),
			}
			groups[key] = c
			order = append(order, c)
		}
		for j, m := range lr.run.Measurements {
			if _, ok := c.rank[m.Unit]; !ok {
				c.units = append(c.units, m.Unit)
				c.rank[m.Unit] = rankOf(j)
			}
			c.xs[m.Unit] = append(c.xs[m.Unit], m.Value)
			c.iters[m.Unit] += int64(lr.run.Iters)
		}
	}

	for _, c := range order {
		row := l.grid.AddRow(c.first.x, c.first.series)
		setConfig(row, c.first.run)
		for _, unit := range c.units {
			xs := c.xs[unit]
			v := derived.Double(xs[0])
			if len(xs) > 1 {
				mean, _, hi := stats.Sample{Xs: xs}.MeanCI(l.opts.Confidence)
				v = derived.Double(mean).WithError(hi - mean)
			}
			row.SetYValue(unit, v.WithCount(c.iters[unit]).WithRank(c.rank[unit]))
		}
	}
}

// Columns describes the columns of the loaded grid, sorted by name.
func (l *Loader) Columns() []Column {
	g := l.Grid()
	var cols []Column
	for _, name := range g.ColumnNames() {
		cols = append(cols, Column{name, l.units[name], g.ColumnKinds(name)})
	}
	return cols
}
