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

// Map is an unordered key -> value map with unique keys, built on the
// cuckoo hashing discipline (spec.md §4.3, §6). Lookup ever examines at
// most two slots per generation; insert is amortized O(1) and occasionally
// triggers allocation of a larger generation.
//
// A Map is NOT goroutine-safe; see ShardedMap for concurrent access.
type Map[K comparable, V any] struct {
	g *growableMap[K, V]
}

// New constructs a Map with room for at least initialCapacity entries
// before its first growth. initialCapacity is rounded up to a power of two
// with a floor of 16 (spec.md §6).
func New[K comparable, V any](initialCapacity int, opts ...Option) *Map[K, V] {
	c := buildConfig(opts)
	return &Map[K, V]{
		g: newGrowableMap[K, V](normalizeCapacity(initialCapacity), c.maxWalk, c.resolveSeeds()),
	}
}

// Insert adds k -> v if k is not already present. Returns false, with no
// mutation, if k is already in the map (spec.md §7's uniqueness rule;
// testable property 4).
func (m *Map[K, V]) Insert(k K, v V) bool {
	return m.g.insertUnique(k, v)
}

// Lookup returns the value associated with k, or the zero value and false
// if k is absent.
func (m *Map[K, V]) Lookup(k K) (V, bool) {
	return m.g.lookup(k)
}

// Contains reports whether k is present, without retrieving its value.
func (m *Map[K, V]) Contains(k K) bool {
	return m.g.contains(k)
}

// Remove deletes k if present, returning whether it was found. A second
// call with the same key returns false (testable property 2).
func (m *Map[K, V]) Remove(k K) bool {
	return m.g.remove(k)
}

// Size returns the number of entries currently in the map (testable
// property 3: successful inserts minus successful removes).
func (m *Map[K, V]) Size() int {
	return m.g.size()
}

// Stats reports the map's generation layout; see growable.go's Stats.
func (m *Map[K, V]) Stats() Stats {
	return m.g.stats()
}
