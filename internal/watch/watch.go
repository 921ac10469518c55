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

// Package watch implements `nabla watch`: rebuild whenever a source file
// under the watched roots changes. No explicit cache invalidation is
// needed for this — see Watch's doc comment.
package watch

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rjeczalik/notify"
)

// Event is one filesystem change nabla cares about: a .nabla file created,
// written, or removed.
type Event struct {
	Path string
}

// Watch subscribes to changes under each of roots (recursively, via the
// "/..." suffix notify expects) and sends one Event per .nabla file change
// to onChange. The cache needs no explicit invalidation here: its key is a
// content hash, so a changed file simply misses on its next hash and the
// old entry is left to age out unread.
func Watch(ctx context.Context, roots []string, onChange func(Event)) error {
	events := make(chan notify.EventInfo, 32)

	for _, root := range roots {
		if err := notify.Watch(root+"/...", events, notify.Create, notify.Write, notify.Remove, notify.Rename); err != nil {
			return errors.Wrapf(err, "watching %s", root)
		}
	}
	defer notify.Stop(events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			path := ev.Path()
			if !strings.HasSuffix(path, ".nabla") {
				continue
			}
			onChange(Event{Path: path})
		}
	}
}
