// Copyright 2026 The CuckooMap Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cuckoomap

// MultiMap is an unordered key -> value map that permits duplicate keys
// (spec.md §4.4, §6): every Insert succeeds regardless of what is already
// present under k, and Lookup returns all values stored under k.
//
// A single generation can hold at most two entries under the same key,
// since a key only ever has two candidate positions; a third concurrent
// insert of the same key is what typically drives a MultiMap's growth,
// exactly as any other collision would.
//
// A MultiMap is NOT goroutine-safe; see ShardedMultiMap for concurrent
// access.
type MultiMap[K comparable, V any] struct {
	g *growableMap[K, V]
}

// NewMultiMap constructs a MultiMap with room for at least initialCapacity
// entries before its first growth.
func NewMultiMap[K comparable, V any](initialCapacity int, opts ...Option) *MultiMap[K, V] {
	c := buildConfig(opts)
	return &MultiMap[K, V]{
		g: newGrowableMap[K, V](normalizeCapacity(initialCapacity), c.maxWalk, c.resolveSeeds()),
	}
}

// Insert adds k -> v unconditionally; unlike Map.Insert it never rejects a
// duplicate key (testable scenario covering spec.md §4.4's duplicate-key
// acceptance).
func (m *MultiMap[K, V]) Insert(k K, v V) {
	m.g.insertAny(k, v)
}

// Lookup returns every value stored under k, in no particular order. The
// returned slice is nil, not empty-but-non-nil, when k is absent.
func (m *MultiMap[K, V]) Lookup(k K) []V {
	return m.g.lookupAll(k)
}

// Contains reports whether at least one value is stored under k.
func (m *MultiMap[K, V]) Contains(k K) bool {
	return m.g.contains(k)
}

// Remove deletes a single occurrence of k, if any are present, and reports
// whether one was found. Which occurrence is unspecified when duplicates
// exist.
func (m *MultiMap[K, V]) Remove(k K) bool {
	return m.g.removeOne(k)
}

// RemoveAll deletes every occurrence of k and returns how many were
// removed (ADDED per spec.md §4.4's "optional remove_all").
func (m *MultiMap[K, V]) RemoveAll(k K) int {
	return m.g.removeAll(k)
}

// Size returns the total number of entries in the MultiMap, counting
// duplicate keys individually.
func (m *MultiMap[K, V]) Size() int {
	return m.g.size()
}

// Stats reports the MultiMap's generation layout; see growable.go's Stats.
func (m *MultiMap[K, V]) Stats() Stats {
	return m.g.stats()
}
