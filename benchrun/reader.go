// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Reader reads measurement runs in the Go benchmark format.
//
// Its API is modeled on bufio.Scanner: call Scan until it returns
// false, calling Record after each successful Scan, and then check Err.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error

	config []Config
	rec    Record
}

// A Record is a single record read from a benchmark file. It is either
// a *Run or a *SyntaxError.
type Record interface {
	// Pos returns the file name and 1-based line number of the
	// record.
	Pos() (fileName string, line int)
}

var _ Record = (*Run)(nil)
var _ Record = (*SyntaxError)(nil)

// A SyntaxError reports a malformed benchmark line. Syntax errors are
// not fatal; the Reader continues with the next line.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader returns a Reader that reads runs from r. fileName is used
// in positions and error messages.
//
// initConfig is an alternating sequence of keys and values installed
// as configuration before the first line is read.
func NewReader(r io.Reader, fileName string, initConfig ...string) *Reader {
	if len(initConfig)%2 != 0 {
		panic("len(initConfig) must be a multiple of 2")
	}
	if fileName == "" {
		fileName = "<unknown>"
	}
	reader := &Reader{s: bufio.NewScanner(r), fileName: fileName}
	for i := 0; i < len(initConfig); i += 2 {
		reader.setConfig(initConfig[i], initConfig[i+1])
	}
	return reader
}

// Scan advances to the next record and reports whether there is one.
// When Scan returns false, the caller should check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		if strings.HasPrefix(line, "Benchmark") {
			run, err := r.parseRun(line)
			if err != nil {
				r.rec = err
				return true
			}
			if run != nil {
				r.rec = run
				return true
			}
			continue
		}
		if key, val, ok := parseKeyValue(line); ok {
			r.setConfig(key, val)
		}
		// Other lines are ignored.
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	r.rec = nil
	return false
}

// Record returns the record read by the last call to Scan.
func (r *Reader) Record() Record {
	return r.rec
}

// Err returns the first I/O error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// setConfig sets key to val. An empty val deletes key.
func (r *Reader) setConfig(key, val string) {
	for i := range r.config {
		if r.config[i].Key != key {
			continue
		}
		if val == "" {
			r.config = append(r.config[:i:i], r.config[i+1:]...)
		} else {
			r.config[i].Value = val
		}
		return
	}
	if val != "" {
		r.config = append(r.config, Config{key, val})
	}
}

// parseKeyValue parses a "key: value" configuration line. Keys begin
// with a lower-case letter and contain no spaces or upper-case letters.
func parseKeyValue(line string) (key, val string, ok bool) {
	colon := -1
	for i, r := range line {
		if i == 0 && !unicode.IsLower(r) {
			return "", "", false
		}
		if unicode.IsSpace(r) || unicode.IsUpper(r) {
			return "", "", false
		}
		if i > 0 && r == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return "", "", false
	}
	key, val = line[:colon], line[colon+1:]
	if val == "" {
		return key, "", true
	}
	// At least one space or tab must follow the colon.
	trimmed := strings.TrimLeft(val, " \t")
	if len(trimmed) == len(val) {
		return "", "", false
	}
	return key, trimmed, true
}

// parseRun parses a benchmark line. It returns nil, nil for a line
// that only names a benchmark, as "go test -v" prints when a
// benchmark starts.
func (r *Reader) parseRun(line string) (*Run, *SyntaxError) {
	fields := strings.FieldsFunc(line[len("Benchmark"):], isSpace)
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) == 1 {
		if strings.IndexFunc(line, isSpace) < 0 {
			return nil, nil
		}
		return nil, r.syntaxError("missing iteration count")
	}
	run := &Run{
		Name:     fields[0],
		fileName: r.fileName,
		line:     r.line,
	}
	iters, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, r.syntaxError("parsing iteration count: " + numErr(err))
	}
	run.Iters = iters

	rest := fields[2:]
	if len(rest) == 0 {
		return nil, r.syntaxError("missing measurements")
	}
	for len(rest) > 0 {
		val, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return nil, r.syntaxError("parsing measurement: " + numErr(err))
		}
		if len(rest) < 2 {
			return nil, r.syntaxError("missing units")
		}
		val, unit := Tidy(val, rest[1])
		run.Measurements = append(run.Measurements, Measurement{val, unit})
		rest = rest[2:]
	}
	run.Config = append([]Config(nil), r.config...)
	return run, nil
}

func (r *Reader) syntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

func isSpace(r rune) bool {
	if r < utf8.RuneSelf {
		return r == ' ' || r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r'
	}
	return unicode.IsSpace(r)
}

func numErr(err error) string {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err.Error()
	}
	return err.Error()
}
