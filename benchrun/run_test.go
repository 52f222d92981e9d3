// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrun

import (
	"reflect"
	"testing"
)

func TestNameConfig(t *testing.T) {
	for _, test := range []struct {
		name string
		base string
		cfg  []Config
	}{
		{"Foo", "Foo", nil},
		{"Foo-8", "Foo", []Config{{"/gomaxprocs", "8"}}},
		{"Foo/n=10/alg=x-4", "Foo", []Config{{"/n", "10"}, {"/alg", "x"}, {"/gomaxprocs", "4"}}},
		{"Foo/small/n=2", "Foo", []Config{{"/part1", "small"}, {"/n", "2"}}},
		{"Foo/ver=go1.2-rc", "Foo", []Config{{"/ver", "go1.2-rc"}}},
		{"Foo-", "Foo-", nil},
	} {
		run := &Run{Name: test.name}
		if got := run.Base(); got != test.base {
			t.Errorf("%s: Base() = %q, want %q", test.name, got, test.base)
		}
		if got := run.NameConfig(); !reflect.DeepEqual(got, test.cfg) {
			t.Errorf("%s: NameConfig() = %v, want %v", test.name, got, test.cfg)
		}
	}
}

func TestGet(t *testing.T) {
	run := &Run{
		Name:   "Encode/size=64-8",
		Config: []Config{{"goos", "linux"}},
	}
	for _, test := range []struct {
		key, want string
		ok        bool
	}{
		{".name", "Encode", true},
		{".fullname", "Encode/size=64-8", true},
		{"/size", "64", true},
		{"/gomaxprocs", "8", true},
		{"goos", "linux", true},
		{"/missing", "", false},
		{"goarch", "", false},
	} {
		got, ok := run.Get(test.key)
		if got != test.want || ok != test.ok {
			t.Errorf("Get(%q) = %q, %v; want %q, %v", test.key, got, ok, test.want, test.ok)
		}
	}

	want := []Config{{"goos", "linux"}, {"/size", "64"}, {"/gomaxprocs", "8"}, {".name", "Encode"}}
	if got := run.AllConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("AllConfig() = %v, want %v", got, want)
	}
}
