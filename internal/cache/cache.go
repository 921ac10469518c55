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

// Package cache memoizes a compiled unit's lowered IR and diagnostics,
// keyed by a content hash of the source file. A hit skips lexing, parsing,
// annotating, validating, and lowering entirely; the build and run drivers
// still report and execute from the cached module. Emit does not use the
// cache, since it generates from the syntax tree.
//
// Two tiers back the cache: a bounded in-memory LRU for the hot path
// (repeated builds within one process or REPL/watch session) and a
// goleveldb database on disk for the cold path (across process
// invocations), rooted at .nabla-cache/ next to the compiled sources.
package cache

import (
	"encoding/hex"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/crypto/blake2b"

	"github.com/nabla-lang/nabla/internal/diagnostics"
	"github.com/nabla-lang/nabla/internal/ir"
)

// Entry is one cached compilation result.
type Entry struct {
	Module      *ir.Module
	Diagnostics []diagnostics.Diagnostic
}

// Cache is a two-tier content-addressed store for compiled units.
type Cache struct {
	hot  *lru.Cache
	cold *leveldb.DB
}

// hotCacheSize bounds the in-memory tier; the cold tier has no such limit,
// it is bounded only by disk.
const hotCacheSize = 256

// Open opens (or creates) the on-disk cache under dir/.nabla-cache.
func Open(dir string) (*Cache, error) {
	hot, err := lru.New(hotCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating hot cache")
	}

	cold, err := leveldb.OpenFile(filepath.Join(dir, ".nabla-cache"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening cold cache")
	}

	return &Cache{hot: hot, cold: cold}, nil
}

// Close releases the on-disk database handle.
func (c *Cache) Close() error { return c.cold.Close() }

// Key returns the content-hash key for source, hex-encoded so it doubles
// as a leveldb key and a debug-log identifier.
func Key(source []byte) string {
	sum := blake2b.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Get looks up key, checking the hot tier before falling back to the cold
// tier and, on a cold hit, promoting the entry into the hot tier.
func (c *Cache) Get(key string) (*Entry, bool) {
	if v, ok := c.hot.Get(key); ok {
		return v.(*Entry), true
	}

	raw, err := c.cold.Get([]byte(key), nil)
	if err != nil {
		return nil, false
	}

	entry, err := decode(raw)
	if err != nil {
		return nil, false
	}
	c.hot.Add(key, entry)
	return entry, true
}

// Put stores entry under key in both tiers.
func (c *Cache) Put(key string, entry *Entry) error {
	c.hot.Add(key, entry)

	raw, err := encode(entry)
	if err != nil {
		return errors.Wrap(err, "encoding cache entry")
	}
	if err := c.cold.Put([]byte(key), raw, nil); err != nil {
		return errors.Wrap(err, "writing cold cache")
	}
	return nil
}

// Invalidate removes key from both tiers. Watch mode does not call it: a
// changed file hashes to a new key.
func (c *Cache) Invalidate(key string) {
	c.hot.Remove(key)
	_ = c.cold.Delete([]byte(key), nil)
}
