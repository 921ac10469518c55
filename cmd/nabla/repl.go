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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/nabla-lang/nabla/internal/compileunit"
	"github.com/nabla-lang/nabla/internal/console"
	"github.com/nabla-lang/nabla/internal/interpreter"
	"gopkg.in/urfave/cli.v1"
)

const replHistoryFile = ".nabla_history"

// skipGroupsRuntime wraps a Runtime, swallowing output for the first
// skipGroups print statements. The REPL recompiles the whole accumulated
// session on every line (declarations and their types must stay visible
// across lines), so without this every earlier print would repeat.
type skipGroupsRuntime struct {
	interpreter.Runtime
	skip, seen int
}

func (r *skipGroupsRuntime) active() bool { return r.seen >= r.skip }

func (r *skipGroupsRuntime) PrintInt(v int64) {
	if r.active() {
		r.Runtime.PrintInt(v)
	}
}
func (r *skipGroupsRuntime) PrintFloat(v float32) {
	if r.active() {
		r.Runtime.PrintFloat(v)
	}
}
func (r *skipGroupsRuntime) PrintString(v string) {
	if r.active() {
		r.Runtime.PrintString(v)
	}
}
func (r *skipGroupsRuntime) PrintEnd() {
	if r.active() {
		r.Runtime.PrintEnd()
	}
	r.seen++
}

func runRepl(ctx *cli.Context) error {
	out := console.New(os.Stderr)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(replHistoryFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(replHistoryFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	var session strings.Builder
	printGroups := 0

	fmt.Println("nabla repl - Ctrl-D to quit")
	for {
		input, err := line.Prompt("nabla> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		attempt := session.String() + input + "\n"
		result := compileunit.Compile("<repl>", []byte(attempt), nil)

		if result.InternalError != "" {
			out.PrintFileError("<repl>", "internal error: "+result.InternalError)
			continue
		}

		hadFatal := false
		for _, d := range result.Diagnostics {
			out.PrintDiagnostic("<repl>", d, attempt)
			hadFatal = true
		}
		if hadFatal || result.Module == nil {
			// Reject this line; the session buffer is left untouched so a
			// typo doesn't corrupt variables already declared.
			continue
		}

		session.WriteString(input)
		session.WriteString("\n")

		rt := &skipGroupsRuntime{Runtime: stdoutRuntime{}, skip: printGroups}
		interpreter.Exec(result.Module, rt)
		printGroups = rt.seen
	}
}
