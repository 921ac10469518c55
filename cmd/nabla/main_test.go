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
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"

	"github.com/nabla-lang/nabla/internal/compileunit"
	"github.com/nabla-lang/nabla/internal/config"
	"github.com/nabla-lang/nabla/internal/console"
	"github.com/nabla-lang/nabla/internal/discover"
)

// newCtx builds a *cli.Context with the given flags registered and args
// parsed, the way app.Run does internally, so the action-function helpers
// below can be exercised without going through os.Args.
func newCtx(t *testing.T, flags []cli.Flag, args []string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestResolveColorNoColorWins(t *testing.T) {
	ctx := newCtx(t, []cli.Flag{noColor, colorFlag}, []string{"-no-color", "-color"})
	c := console.New(&bytes.Buffer{})
	c.SetColorEnabled(true)
	resolveColor(c, ctx, config.Config{})
	assert.False(t, c.ColorEnabled())
}

func TestResolveColorFlagOverridesConfig(t *testing.T) {
	ctx := newCtx(t, []cli.Flag{noColor, colorFlag}, []string{"-color"})
	c := console.New(&bytes.Buffer{})
	off := false
	resolveColor(c, ctx, config.Config{Color: &off})
	assert.True(t, c.ColorEnabled())
}

func TestResolveColorFallsBackToConfig(t *testing.T) {
	ctx := newCtx(t, []cli.Flag{noColor, colorFlag}, nil)
	c := console.New(&bytes.Buffer{})
	on := true
	resolveColor(c, ctx, config.Config{Color: &on})
	assert.True(t, c.ColorEnabled())
}

func TestResolveColorLeavesAutoDetectedWhenNothingSet(t *testing.T) {
	ctx := newCtx(t, []cli.Flag{noColor, colorFlag}, nil)
	c := console.New(&bytes.Buffer{})
	c.SetColorEnabled(true)
	resolveColor(c, ctx, config.Config{})
	assert.True(t, c.ColorEnabled())
}

func TestGatherFilesUsesArgsWhenGiven(t *testing.T) {
	ctx := newCtx(t, nil, []string{"a.nabla", "b.nabla"})
	files, err := gatherFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.nabla", "b.nabla"}, files)
}

func TestGatherFilesFallsBackToDiscoverWhenNoArgs(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	ctx := newCtx(t, nil, nil)
	files, err := gatherFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOpenCacheReturnsNilWhenDisabled(t *testing.T) {
	ctx := newCtx(t, []cli.Flag{cacheFlag}, []string{"-cache=false"})
	assert.Nil(t, openCache(ctx))
}

func TestCompileConcurrentlyReportsEveryFileAndFlagsFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.nabla")
	bad := filepath.Join(dir, "bad.nabla")
	require.NoError(t, os.WriteFile(good, []byte(`let x = 1;`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`let x = "unterminated;`), 0o644))
	missing := filepath.Join(dir, "missing.nabla")

	out := console.New(&bytes.Buffer{})
	var seen []string
	failed := compileConcurrently([]string{good, bad, missing}, nil, out,
		func(path string, src *discover.Source, result compileunit.Result) {
			seen = append(seen, path)
		})

	assert.True(t, failed)
	sort.Strings(seen)
	assert.Equal(t, []string{bad, good}, seen)
}

func TestCompileConcurrentlySucceedsWhenEveryFileCompiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.nabla")
	b := filepath.Join(dir, "b.nabla")
	require.NoError(t, os.WriteFile(a, []byte(`let x = 1;`), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(`let y = 2;`), 0o644))

	out := console.New(&bytes.Buffer{})
	failed := compileConcurrently([]string{a, b}, nil, out,
		func(path string, src *discover.Source, result compileunit.Result) {
			assert.False(t, result.Failed)
		})
	assert.False(t, failed)
}

func TestOpenCacheOpensUnderCwdWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	ctx := newCtx(t, []cli.Flag{cacheFlag}, nil)
	c := openCache(ctx)
	require.NotNil(t, c)
	defer c.Close()

	_, err = os.Stat(".nabla-cache")
	assert.NoError(t, err)
}
