// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import (
	"reflect"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) (runs []*Run, errs []string) {
	t.Helper()
	r := NewReader(strings.NewReader(input), "test")
	for r.Scan() {
		switch rec := r.Record().(type) {
		case *Run:
			runs = append(runs, rec)
		case *SyntaxError:
			errs = append(errs, rec.Error())
		default:
			t.Fatalf("unexpected record type %T", rec)
		}
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	return
}

func TestReader(t *testing.T) {
	runs, errs := readAll(t, `goos: linux
goarch: amd64
note: first value

BenchmarkOne 100 1500 ns/op 64 B/op
BenchmarkTwo/size=10-8 20 2 MB/s
PASS
note:
goarch: arm64
BenchmarkThree 1 7 frobs
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}

	one := runs[0]
	if one.Name != "One" || one.Iters != 100 {
		t.Errorf("run 0: name %q iters %d", one.Name, one.Iters)
	}
	wantM := []Measurement{{1500 * nanos, "sec/op"}, {64, "B/op"}}
	if !reflect.DeepEqual(one.Measurements, wantM) {
		t.Errorf("run 0 measurements = %v, want %v", one.Measurements, wantM)
	}
	wantCfg := []Config{{"goos", "linux"}, {"goarch", "amd64"}, {"note", "first value"}}
	if !reflect.DeepEqual(one.Config, wantCfg) {
		t.Errorf("run 0 config = %v, want %v", one.Config, wantCfg)
	}
	if file, line := one.Pos(); file != "test" || line != 5 {
		t.Errorf("run 0 pos = %s:%d, want test:5", file, line)
	}

	if v, ok := runs[1].Value("B/s"); !ok || v != 2e6 {
		t.Errorf("run 1 B/s = %v, %v", v, ok)
	}

	// Clearing a key removes it; changing a key keeps its position.
	wantCfg = []Config{{"goos", "linux"}, {"goarch", "arm64"}}
	if !reflect.DeepEqual(runs[2].Config, wantCfg) {
		t.Errorf("run 2 config = %v, want %v", runs[2].Config, wantCfg)
	}
	if v, ok := runs[2].Value("frobs"); !ok || v != 7 {
		t.Errorf("run 2 frobs = %v, %v", v, ok)
	}
}

func TestReaderSyntaxErrors(t *testing.T) {
	runs, errs := readAll(t, `BenchmarkStarting
BenchmarkA
BenchmarkB x 1 ns/op
BenchmarkC 1
BenchmarkD 1 abc ns/op
BenchmarkE 1 1
BenchmarkF 1 1 ns/op
`)
	want := []string{
		"test:3: parsing iteration count: invalid syntax",
		"test:4: missing measurements",
		"test:5: parsing measurement: invalid syntax",
		"test:6: missing units",
	}
	if !reflect.DeepEqual(errs, want) {
		t.Errorf("errors:\n got %q\nwant %q", errs, want)
	}
	if len(runs) != 1 || runs[0].Name != "F" {
		t.Errorf("got runs %v, want only F", runs)
	}
}

func TestReaderInitConfig(t *testing.T) {
	r := NewReader(strings.NewReader("BenchmarkX 1 1 ns/op\n"), "f", ".file", "base")
	if !r.Scan() {
		t.Fatal("no record")
	}
	run := r.Record().(*Run)
	if v, ok := run.Get(".file"); !ok || v != "base" {
		t.Errorf(".file = %q, %v", v, ok)
	}
}

func TestParseKeyValue(t *testing.T) {
	for _, test := range []struct {
		line     string
		key, val string
		ok       bool
	}{
		{"key: value", "key", "value", true},
		{"key:\tvalue", "key", "value", true},
		{"key:", "key", "", true},
		{"key:value", "", "", false},
		{"Key: value", "", "", false},
		{"keY: value", "", "", false},
		{"my key: value", "", "", false},
		{"no colon", "", "", false},
		{":x", "", "", false},
	} {
		key, val, ok := parseKeyValue(test.line)
		if key != test.key || val != test.val || ok != test.ok {
			t.Errorf("parseKeyValue(%q) = %q, %q, %v; want %q, %q, %v",
				test.line, key, val, ok, test.key, test.val, test.ok)
		}
	}
}
