// Copyright 2026 The nabla Authors
// This file is part of nabla.
//
// nabla is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nabla is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nabla. If not, see <http://www.gnu.org/licenses/>.

// Command nabla is the toolchain entry point: build, run, emit C++, dump
// tokens, or watch a project's sources.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/mem"
	"gopkg.in/urfave/cli.v1"

	"github.com/nabla-lang/nabla/internal/cache"
	"github.com/nabla-lang/nabla/internal/codegen"
	"github.com/nabla-lang/nabla/internal/compileunit"
	"github.com/nabla-lang/nabla/internal/config"
	"github.com/nabla-lang/nabla/internal/console"
	"github.com/nabla-lang/nabla/internal/discover"
	"github.com/nabla-lang/nabla/internal/interpreter"
	"github.com/nabla-lang/nabla/internal/lexer"
	"github.com/nabla-lang/nabla/internal/watch"
)

var (
	colorFlag = cli.BoolFlag{Name: "color", Usage: "force colored diagnostics"}
	noColor   = cli.BoolFlag{Name: "no-color", Usage: "force plain diagnostics"}
	dumpFlag  = cli.StringFlag{Name: "dump", Usage: "dump `STAGE` (ast, annotations, ir) instead of running"}
	cacheFlag = cli.BoolTFlag{Name: "cache", Usage: "cache compiled units under .nabla-cache (default on)"}
	statsFlag = cli.BoolFlag{Name: "stats", Usage: "print system-wide used/total memory after the build"}
)

func main() {
	app := cli.NewApp()
	app.Name = "nabla"
	app.Usage = "the nabla language toolchain"
	app.Version = "0.1.0"

	app.Commands = []cli.Command{
		{
			Name:   "build",
			Usage:  "compile every source file, reporting diagnostics",
			Flags:  []cli.Flag{colorFlag, noColor, dumpFlag, cacheFlag, statsFlag},
			Action: runBuild,
		},
		{
			Name:   "run",
			Usage:  "compile and interpret every source file",
			Flags:  []cli.Flag{colorFlag, noColor, cacheFlag, statsFlag},
			Action: runInterpret,
		},
		{
			Name:      "emit",
			Usage:     "compile and emit target-language source",
			ArgsUsage: "[files...]",
			Flags: []cli.Flag{
				colorFlag, noColor,
				cli.StringFlag{Name: "lang", Value: "cxx", Usage: "target language"},
			},
			Action: runEmit,
		},
		{
			Name:      "tokens",
			Usage:     "print the token stream for one or more files",
			ArgsUsage: "<files...>",
			Action:    runTokens,
		},
		{
			Name:   "repl",
			Usage:  "start an interactive read-eval-print loop",
			Action: runRepl,
		},
		{
			Name:   "watch",
			Usage:  "rebuild automatically on source changes",
			Flags:  []cli.Flag{colorFlag, noColor},
			Action: runWatch,
		},
	}
	app.Action = runBuild

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nabla:", err)
		os.Exit(1)
	}
}

// stdoutRuntime adapts os.Stdout to interpreter.Runtime, matching the
// original console's unbuffered print/print_end split: every printed value
// in one statement is concatenated with no separator, terminated by one
// newline from PrintEnd.
type stdoutRuntime struct{}

func (stdoutRuntime) PrintInt(v int64)     { fmt.Print(v) }
func (stdoutRuntime) PrintFloat(v float32) { fmt.Print(v) }
func (stdoutRuntime) PrintString(v string) { fmt.Print(v) }
func (stdoutRuntime) PrintEnd()            { fmt.Println() }

// resolveColor applies the -color/-no-color flags over nabla.toml and
// terminal auto-detection, in that priority order.
func resolveColor(c *console.Console, ctx *cli.Context, cfg config.Config) {
	if ctx.Bool("no-color") {
		c.SetColorEnabled(false)
		return
	}
	if ctx.Bool("color") {
		c.SetColorEnabled(true)
		return
	}
	// Neither flag given: defer to nabla.toml if it names an explicit value.
	if cfg.Color != nil {
		c.SetColorEnabled(*cfg.Color)
	}
}

func gatherFiles(ctx *cli.Context) ([]string, error) {
	if args := ctx.Args(); len(args) > 0 {
		return []string(args), nil
	}
	return discover.Find(discover.Roots)
}

func openCache(ctx *cli.Context) *cache.Cache {
	if !ctx.BoolT("cache") {
		return nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil
	}
	c, err := cache.Open(dir)
	if err != nil {
		return nil
	}
	return c
}

func printStats(ctx *cli.Context) {
	if !ctx.Bool("stats") {
		return
	}
	v, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	fmt.Fprintf(os.Stderr, "nabla: %d MiB used / %d MiB total\n", v.Used/1024/1024, v.Total/1024/1024)
}

// compileConcurrently compiles every path independently via discover.RunAll
// and calls report once per file with that file's Result. Compilation
// itself runs in parallel, one goroutine per file; report runs under an
// internal lock so concurrently finishing files never interleave their
// console or stdout output. It returns whether any file failed to open or
// compile cleanly.
func compileConcurrently(paths []string, c *cache.Cache, out *console.Console, report func(path string, src *discover.Source, result compileunit.Result)) bool {
	var mu sync.Mutex
	failed := false

	units := make([]discover.Unit, len(paths))
	for i, path := range paths {
		path := path
		units[i] = discover.Unit{Path: path, Run: func(src *discover.Source, openErr error) error {
			if openErr != nil {
				mu.Lock()
				out.PrintFileError(path, openErr.Error())
				failed = true
				mu.Unlock()
				return nil
			}

			result := compileunit.Compile(path, src.Bytes(), c)

			mu.Lock()
			report(path, src, result)
			if result.Failed {
				failed = true
			}
			mu.Unlock()
			return nil
		}}
	}

	if err := discover.RunAll(context.Background(), units); err != nil {
		out.PrintError(err.Error())
		failed = true
	}
	return failed
}

func runBuild(ctx *cli.Context) error {
	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}
	out := console.New(os.Stderr)
	resolveColor(out, ctx, cfg)

	files, err := gatherFiles(ctx)
	if err != nil {
		return err
	}

	c := openCache(ctx)
	if c != nil {
		defer c.Close()
	}

	dump := ctx.String("dump")
	failed := compileConcurrently(files, c, out, func(path string, src *discover.Source, result compileunit.Result) {
		if result.InternalError != "" {
			out.PrintFileError(path, "internal error: "+result.InternalError)
			fmt.Fprintln(os.Stderr, result.Stack)
			return
		}

		for _, d := range result.Diagnostics {
			out.PrintDiagnostic(path, d, string(src.Bytes()))
		}

		switch dump {
		case "ast":
			spew.Fdump(os.Stdout, result.Tree)
		case "annotations":
			spew.Fdump(os.Stdout, result.Annotations)
		case "ir":
			spew.Fdump(os.Stdout, result.Module)
		}
	})

	printStats(ctx)
	if failed {
		return cli.NewExitError("", 1)
	}
	return nil
}

func runInterpret(ctx *cli.Context) error {
	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}
	out := console.New(os.Stderr)
	resolveColor(out, ctx, cfg)

	files, err := discover.FindCwd()
	if err != nil {
		return err
	}
	if a := []string(ctx.Args()); len(a) > 0 {
		files = a
	}

	c := openCache(ctx)
	if c != nil {
		defer c.Close()
	}

	failed := compileConcurrently(files, c, out, func(path string, src *discover.Source, result compileunit.Result) {
		if result.InternalError != "" {
			out.PrintFileError(path, "internal error: "+result.InternalError)
			fmt.Fprintln(os.Stderr, result.Stack)
			return
		}

		for _, d := range result.Diagnostics {
			out.PrintDiagnostic(path, d, string(src.Bytes()))
		}
		if result.Failed || result.Module == nil {
			return
		}
		// Held under compileConcurrently's lock so two files' printed
		// output never interleaves mid-statement.
		interpreter.Exec(result.Module, stdoutRuntime{})
	})

	printStats(ctx)
	if failed {
		return cli.NewExitError("", 1)
	}
	return nil
}

func runEmit(ctx *cli.Context) error {
	out := console.New(os.Stderr)

	files, err := gatherFiles(ctx)
	if err != nil {
		return err
	}

	failed := false
	for _, path := range files {
		src, err := discover.Open(path)
		if err != nil {
			out.PrintFileError(path, err.Error())
			failed = true
			continue
		}
		result := compileunit.Compile(path, src.Bytes(), nil)
		for _, d := range result.Diagnostics {
			out.PrintDiagnostic(path, d, string(src.Bytes()))
		}
		if result.Failed || result.Tree == nil {
			failed = true
			src.Close()
			continue
		}

		w := codegen.New(ctx.String("lang"), result.Annotations)
		if w == nil {
			out.PrintFileError(path, "unsupported -lang "+ctx.String("lang"))
			failed = true
			src.Close()
			continue
		}
		fmt.Println(codegen.Generate(result.Tree, w))
		src.Close()
	}

	if failed {
		return cli.NewExitError("", 1)
	}
	return nil
}

func runTokens(ctx *cli.Context) error {
	out := console.New(os.Stderr)
	files := []string(ctx.Args())
	if len(files) == 0 {
		return cli.NewExitError("nabla tokens: at least one file required", 1)
	}

	for _, path := range files {
		src, err := discover.Open(path)
		if err != nil {
			out.PrintFileError(path, err.Error())
			continue
		}
		tokens, bad, what := lexer.Tokenize(src.Bytes())
		if bad != nil {
			out.PrintFileError(path, what)
		}

		fmt.Println(filepath.Base(path))
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"kind", "line", "column", "text"})
		for _, t := range tokens {
			table.Append([]string{
				t.Kind.String(),
				fmt.Sprint(t.Line),
				fmt.Sprint(t.Column),
				t.Text(),
			})
		}
		table.Render()
		src.Close()
	}
	return nil
}

func runWatch(ctx *cli.Context) error {
	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}
	out := console.New(os.Stderr)
	resolveColor(out, ctx, cfg)

	c := openCache(ctx)
	if c != nil {
		defer c.Close()
	}

	build := func() {
		files, err := discover.Find(discover.Roots)
		if err != nil {
			out.PrintError(err.Error())
			return
		}
		compileConcurrently(files, c, out, func(path string, src *discover.Source, result compileunit.Result) {
			if result.InternalError != "" {
				out.PrintFileError(path, "internal error: "+result.InternalError)
				fmt.Fprintln(os.Stderr, result.Stack)
				return
			}
			for _, d := range result.Diagnostics {
				out.PrintDiagnostic(path, d, string(src.Bytes()))
			}
		})
	}

	build()
	return watch.Watch(context.Background(), discover.Roots, func(ev watch.Event) {
		fmt.Fprintf(os.Stderr, "nabla: %s changed, rebuilding\n", ev.Path)
		build()
	})
}
