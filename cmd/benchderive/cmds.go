// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"golang.org/x/benchplot/benchrun"
	"golang.org/x/benchplot/derived"
	"golang.org/x/benchplot/gridload"
	"golang.org/x/benchplot/plotdata"
)

func newRootCmd(stdin io.Reader) *cobra.Command {
	root := &cobra.Command{
		Use:           "benchderive",
		Short:         "Compute derived data from Go benchmark results",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := gridload.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "eval expr [inputs...]",
		Short: "Evaluate a derived data tree over benchmark results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalCmd(cmd, args, stdin)
		}}
	cmd.Flags().String("x", envString("BENCHDERIVE_X", defaults.X), "configuration key giving each row's x-value")
	cmd.Flags().StringSlice("series", envList("BENCHDERIVE_SERIES"), "configuration keys naming each row's series")
	cmd.Flags().StringArray("match", nil, "only load runs with configuration `key=value`")
	cmd.Flags().Bool("collapse", false, "merge runs with the same series, x-value, and name")
	cmd.Flags().Float64("confidence", envFloat("BENCHDERIVE_CONFIDENCE", defaults.Confidence), "confidence level of collapsed intervals")
	cmd.Flags().String("format", envString("BENCHDERIVE_FORMAT", "text"), "output format, 'text' or 'csv'")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "funcs",
		Short: "List the available functions",
		Args:  cobra.NoArgs,
		Run:   listFuncs}
	root.AddCommand(cmd)

	return root
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func loadOptions(cmd *cobra.Command) (gridload.Options, error) {
	opts := gridload.DefaultOptions()
	opts.X, _ = cmd.Flags().GetString("x")
	opts.Series, _ = cmd.Flags().GetStringSlice("series")
	opts.Collapse, _ = cmd.Flags().GetBool("collapse")
	opts.Confidence, _ = cmd.Flags().GetFloat64("confidence")
	if opts.Confidence <= 0 || opts.Confidence >= 1 {
		return opts, errors.Errorf("confidence must be between 0 and 1, got %v", opts.Confidence)
	}
	matches, _ := cmd.Flags().GetStringArray("match")
	for _, m := range matches {
		i := strings.Index(m, "=")
		if i <= 0 {
			return opts, errors.Errorf("bad --match %q: want key=value", m)
		}
		if opts.Match == nil {
			opts.Match = make(map[string]string)
		}
		opts.Match[m[:i]] = m[i+1:]
	}
	return opts, nil
}

func evalCmd(cmd *cobra.Command, args []string, stdin io.Reader) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "csv" {
		return errors.Errorf("unknown format %q", format)
	}

	files := &benchrun.Files{Paths: args[1:], AllowStdin: true, Stdin: stdin}
	loader, err := gridload.Load(files, opts)
	if err != nil {
		return err
	}
	// Syntax errors and skipped runs are not fatal.
	for _, w := range loader.Warnings() {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}
	g := loader.Grid()

	tree, err := parseTree([]byte(args[0]), g, derived.DefaultCatalog)
	if err != nil {
		return err
	}
	name, err := tree.Evaluate(g)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "csv" {
		return plotdata.WriteCSV(out, g, name)
	}
	fmt.Fprintf(out, "%s\n\n", name)
	return plotdata.WriteText(out, g, name)
}

func listFuncs(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	for _, sym := range derived.DefaultCatalog.Symbols() {
		sig, _ := derived.DefaultCatalog.Signature(sym)
		fmt.Fprintln(out, sig)
	}
}
