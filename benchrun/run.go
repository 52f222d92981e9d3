// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchrun reads benchmark measurement runs in the Go benchmark
// format.
//
// The format is documented at
// https://golang.org/design/14313-benchmark-format. Each benchmark line
// becomes a Run carrying the file configuration in effect at that line,
// the configuration encoded in the benchmark's sub-name, and the line's
// measurements tidied to base units.
//
// Unlike a streaming reader built for throughput, a Reader returns a
// fresh Run for every benchmark line, so callers may retain Runs.
package benchrun

import (
	"strconv"
	"strings"
)

// A Run is one benchmark result line and the configuration it was
// measured under.
type Run struct {
	// Name is the full benchmark name without the "Benchmark"
	// prefix, including sub-benchmark configuration and GOMAXPROCS.
	Name string

	// Iters is the number of iterations the measurements were
	// averaged over.
	Iters int

	// Config is the file configuration in effect for this run, in
	// the order keys were first set.
	Config []Config

	// Measurements are the run's value/unit pairs. Units are tidied
	// to base units, so "ns/op" becomes "sec/op".
	Measurements []Measurement

	fileName string
	line     int
}

// A Config is a single key/value configuration pair.
type Config struct {
	Key, Value string
}

// A Measurement is one value/unit pair of a Run.
type Measurement struct {
	Value float64
	Unit  string
}

// Pos returns the file name and line number the Run was read from.
func (r *Run) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Base returns the base name of the benchmark, without sub-benchmark
// configuration or GOMAXPROCS.
func (r *Run) Base() string {
	base, _, _ := splitName(r.Name)
	return base
}

// NameConfig returns the configuration encoded in the benchmark's
// sub-name. A "/key=value" part yields key "/key", a positional part
// without "=" yields "/partN" where N is its 1-based position, and a
// GOMAXPROCS suffix "-N" yields "/gomaxprocs".
func (r *Run) NameConfig() []Config {
	_, parts, procs := splitName(r.Name)
	var cfg []Config
	for i, part := range parts {
		if eq := strings.IndexByte(part, '='); eq > 0 {
			cfg = append(cfg, Config{"/" + part[:eq], part[eq+1:]})
		} else {
			cfg = append(cfg, Config{"/part" + strconv.Itoa(i+1), part})
		}
	}
	if procs != "" {
		cfg = append(cfg, Config{"/gomaxprocs", procs})
	}
	return cfg
}

// Get returns the value of configuration key for this run. Keys may be
// file configuration keys, sub-name keys as returned by NameConfig,
// ".name" for the base name, or ".fullname" for the full name.
func (r *Run) Get(key string) (string, bool) {
	switch {
	case key == ".name":
		return r.Base(), true
	case key == ".fullname":
		return r.Name, true
	case strings.HasPrefix(key, "/"):
		for _, cfg := range r.NameConfig() {
			if cfg.Key == key {
				return cfg.Value, true
			}
		}
		return "", false
	}
	for _, cfg := range r.Config {
		if cfg.Key == key {
			return cfg.Value, true
		}
	}
	return "", false
}

// AllConfig returns every configuration key of the run: the file
// configuration, then the sub-name configuration, then ".name".
func (r *Run) AllConfig() []Config {
	all := make([]Config, 0, len(r.Config)+4)
	all = append(all, r.Config...)
	all = append(all, r.NameConfig()...)
	all = append(all, Config{".name", r.Base()})
	return all
}

// Value returns the measurement in the given (tidied) unit.
func (r *Run) Value(unit string) (float64, bool) {
	for _, m := range r.Measurements {
		if m.Unit == unit {
			return m.Value, true
		}
	}
	return 0, false
}

// splitName splits a full benchmark name into its base name, its "/..."
// parts (without the slashes), and its GOMAXPROCS suffix (without the
// "-"), if any.
func splitName(name string) (base string, parts []string, procs string) {
	if i := strings.LastIndexByte(name, '-'); i >= 0 && i < len(name)-1 {
		if isDigits(name[i+1:]) {
			name, procs = name[:i], name[i+1:]
		}
	}
	fields := strings.Split(name, "/")
	return fields[0], fields[1:], procs
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
