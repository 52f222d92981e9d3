// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// benchderive computes derived data from Go benchmark results.
//
// Usage:
//
//	benchderive eval [flags] expr [inputs...]
//	benchderive funcs
//
// eval reads benchmark results from the input files (or stdin), builds
// a grid with one row per benchmark run, evaluates the derived data
// tree expr over the grid, and prints the resulting column.
//
// expr is a JSON tree. Function nodes have the form
//
//	{"fn": "avg", "args": [...]}
//
// and leaves are one of
//
//	{"var": "sec/op"}   a measurement column
//	{"prop": "goos"}    a configuration column
//	{"const": 3.0}      a Double constant
//	{"const": 3}        an Integer constant
//	{"const": "linux"}  a String constant
//	{"int": 3}          an Integer constant
//
// Numeric constants are typed the way configuration values are, so
// {"const": 8} matches a property such as /gomaxprocs=8 while
// {"const": 8.0} does not.
//
// Each row's x-value comes from the configuration key named by --x and
// its series from the keys named by --series. Defaults for --x, --series,
// --format, and --confidence may be given by the environment variables
// BENCHDERIVE_X, BENCHDERIVE_SERIES, BENCHDERIVE_FORMAT, and
// BENCHDERIVE_CONFIDENCE, which are also read from a .env file in the
// current directory.
//
// funcs lists the available functions and their parameters.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("benchderive: ")
	log.SetFlags(0)

	// A missing .env file is fine.
	_ = godotenv.Load()

	root := newRootCmd(os.Stdin)
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
