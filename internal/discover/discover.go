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

// Package discover finds and reads .nabla source files, then compiles
// independent files concurrently. Nothing in the core shares state across
// files, so file-level parallelism is safe by construction.
package discover

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Roots are the conventional source directories walked by the compiler
// variant of the CLI; the interpreter variant instead walks only the
// current working directory (see cmd/nabla).
var Roots = []string{"src", "deps"}

// Find walks each of roots (skipping any that don't exist) collecting
// every .nabla file, in directory-iteration order.
func Find(roots []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", root)
		}
		if !info.IsDir() {
			continue
		}
		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(path, ".nabla") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", root)
		}
	}
	return files, nil
}

// FindCwd lists every .nabla file directly in the current working
// directory, non-recursively — the interpreter CLI variant's discovery
// rule.
func FindCwd() ([]string, error) {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil, errors.Wrap(err, "reading working directory")
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".nabla") {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// Source is one file's memory-mapped contents. The mapping backs every
// Token.Data slice taken from it for the file's whole compilation, so
// Close must not be called until the pipeline for this file has finished.
type Source struct {
	Path string
	mmap mmap.MMap
}

// Bytes returns the mapped file contents.
func (s *Source) Bytes() []byte { return []byte(s.mmap) }

// Close unmaps the file.
func (s *Source) Close() error { return s.mmap.Unmap() }

// Open memory-maps path for reading.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if info.Size() == 0 {
		// mmap.Map rejects zero-length files; treat an empty source as a
		// zero-length in-memory buffer instead of mapping it.
		return &Source{Path: path}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "mapping %s", path)
	}
	return &Source{Path: path, mmap: m}, nil
}

// Unit is one file's task-scoped compile-and-consume unit. RunAll opens
// Path and invokes Run with either the mapped Source or the error from
// opening it, so a caller can report a missing/unreadable file exactly
// like every other per-file diagnostic instead of losing it into an
// aggregated error.
type Unit struct {
	Path string
	Run  func(src *Source, openErr error) error
}

// RunAll runs one goroutine per unit, all of them independent since
// nothing shares state across files, and returns the first error any Run
// returns. Every unit still runs to completion even if a sibling fails, so
// a caller can report every file's diagnostics from one invocation.
func RunAll(ctx context.Context, units []Unit) error {
	g, _ := errgroup.WithContext(ctx)
	for _, u := range units {
		u := u
		g.Go(func() error {
			src, err := Open(u.Path)
			if src != nil {
				defer src.Close()
			}
			return u.Run(src, err)
		})
	}
	return g.Wait()
}
