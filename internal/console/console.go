// Copyright 2026 The nabla Authors
// This file is part of the nabla toolchain.
//
// The nabla toolchain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The nabla toolchain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the nabla toolchain. If not, see <http://www.gnu.org/licenses/>.

// Package console renders nabla's diagnostics to a terminal, matching the
// exact caret-format contract external tooling and tests depend on:
//
//	 <line> | <source line>
//	        | <spaces>^~~~~
//	        | <spaces>     `<message>
//
// Color is applied around the caret/message, never inside the byte layout
// itself, so the plain-text form (as captured by tests, or produced when
// output isn't a terminal) is unaffected.
package console

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/nabla-lang/nabla/internal/diagnostics"
)

// Console writes program-level and source-level errors to one output
// stream.
type Console struct {
	out         io.Writer
	programName string
	colorOn     bool

	errorLabel *color.Color
	caretLabel *color.Color
}

// New wraps out (typically os.Stderr) for colorable writing and
// auto-detects whether it's an interactive terminal. Pass a plain
// io.Writer (e.g. a test buffer) to always get plain, uncolored output.
func New(out io.Writer) *Console {
	c := &Console{
		out:         out,
		programName: "nabla",
		errorLabel:  color.New(color.FgRed, color.Bold),
		caretLabel:  color.New(color.FgRed),
	}
	if f, ok := out.(*os.File); ok {
		c.out = colorable.NewColorable(f)
		c.colorOn = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return c
}

// SetColorEnabled overrides the auto-detected color setting, e.g. from a
// -color/-no-color flag or nabla.toml.
func (c *Console) SetColorEnabled(enabled bool) { c.colorOn = enabled }

// ColorEnabled reports the console's current color setting.
func (c *Console) ColorEnabled() bool { return c.colorOn }

// SetProgramName overrides the "nabla" label used by PrintError.
func (c *Console) SetProgramName(name string) { c.programName = name }

func (c *Console) colorize(cl *color.Color, s string) string {
	if !c.colorOn {
		return s
	}
	return cl.Sprint(s)
}

// PrintError reports a program-level error with no source location.
func (c *Console) PrintError(what string) {
	fmt.Fprintf(c.out, "%s: %s\n", c.programName, c.colorize(c.errorLabel, "error: "+what))
}

// PrintFileError reports a file-level error (I/O failure) with no token.
func (c *Console) PrintFileError(filename, what string) {
	fmt.Fprintf(c.out, "%s: %s\n", filename, c.colorize(c.errorLabel, "error: "+what))
}

// PrintDiagnostic renders one source Diagnostic against source, the full
// text of the file the diagnostic's token came from.
func (c *Console) PrintDiagnostic(filename string, d diagnostics.Diagnostic, source string) {
	if d.Token.Zero() {
		c.PrintFileError(filename, d.What)
		return
	}

	tok := d.Token
	lp := linePrefix(tok.Line)
	ls := lineSpace(tok.Line)
	cs := columnSpace(tok.Column)
	width := len(tok.Data)
	if width == 0 {
		width = 1
	}

	fmt.Fprintf(c.out, "%s%s\n", lp, getLine(tok.Line, source))
	fmt.Fprintf(c.out, "%s%s%s\n", ls, cs, c.colorize(c.caretLabel, "^"+strings.Repeat("~", width-1)))
	fmt.Fprintf(c.out, "%s%s%s`%s\n", ls, cs, strings.Repeat(" ", width), d.What)
}

func getLine(line int, source string) string {
	l := 1
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			if l == line {
				return source[start:i]
			}
			l++
			start = i + 1
		}
	}
	if l == line {
		return source[start:]
	}
	return ""
}

func columnSpace(column int) string {
	if column < 1 {
		return ""
	}
	return strings.Repeat(" ", column-1)
}

func lineSpace(line int) string {
	tmp := " " + strconv.Itoa(line)
	return strings.Repeat(" ", len(tmp)) + " | "
}

func linePrefix(line int) string {
	return " " + strconv.Itoa(line) + " | "
}
