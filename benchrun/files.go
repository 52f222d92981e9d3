// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Files reads runs from a sequence of input files.
//
// Each Run gets a ".file" configuration key naming the file it came
// from. A path given more than once is disambiguated by appending
// "#N". A path of the form label=path uses label for ".file" instead.
type Files struct {
	// Paths is the list of files to read.
	Paths []string

	// AllowStdin treats "-" as standard input, and an empty Paths as
	// a single "-".
	AllowStdin bool

	// Stdin, if non-nil, replaces os.Stdin.
	Stdin io.Reader

	inputs  []fileInput
	started bool
	reader  *Reader
	closer  io.Closer
	err     error
}

type fileInput struct {
	path, label string
}

func (f *Files) init() {
	f.started = true
	paths := f.Paths
	if f.AllowStdin && len(paths) == 0 {
		paths = []string{"-"}
	}
	count := make(map[string]int)
	for _, p := range paths {
		if !strings.Contains(p, "=") {
			count[p]++
		}
	}
	seen := make(map[string]int)
	for _, p := range paths {
		inp := fileInput{path: p, label: p}
		if i := strings.Index(p, "="); i >= 0 {
			inp.label, inp.path = p[:i], p[i+1:]
		} else if count[p] > 1 {
			inp.label = fmt.Sprintf("%s#%d", p, seen[p])
			seen[p]++
		}
		f.inputs = append(f.inputs, inp)
	}
}

// Scan advances to the next record of the file sequence and reports
// whether there is one. When Scan returns false, the caller should
// check Err.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if !f.started {
		f.init()
	}
	for {
		if f.reader == nil {
			if len(f.inputs) == 0 {
				return false
			}
			inp := f.inputs[0]
			f.inputs = f.inputs[1:]
			if err := f.open(inp); err != nil {
				f.err = err
				return false
			}
		}
		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		if f.closer != nil {
			f.closer.Close()
			f.closer = nil
		}
		f.reader = nil
		if err != nil {
			f.err = err
			return false
		}
	}
}

func (f *Files) open(inp fileInput) error {
	if f.AllowStdin && inp.path == "-" {
		in := f.Stdin
		if in == nil {
			in = os.Stdin
		}
		f.reader = NewReader(in, "<stdin>", ".file", inp.label)
		return nil
	}
	file, err := os.Open(inp.path)
	if err != nil {
		return err
	}
	f.closer = file
	f.reader = NewReader(file, inp.path, ".file", inp.label)
	return nil
}

// Record returns the record read by the last call to Scan.
func (f *Files) Record() Record {
	if f.reader == nil {
		return nil
	}
	return f.reader.Record()
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}
