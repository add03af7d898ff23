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

// growableMap is the generation stack described in spec.md §4.3: a list of
// internalTables T0..Tk of doubling size, where Tk (the last one) is always
// the active table for inserts. Older generations are never migrated or
// shrunk; they stay live and are searched on lookup (spec.md's "no eager
// migration" reference policy; entries are not migrated lazily either).
type growableMap[K comparable, V any] struct {
	generations []*internalTable[K, V]
	seeds       hashSeeds
	maxWalk     int // 0 means "use the size-derived default"
}

func newGrowableMap[K comparable, V any](initialCapacity, maxWalk int, seeds hashSeeds) *growableMap[K, V] {
	hasher := newKeyHasher[K](seeds)
	g := &growableMap[K, V]{seeds: seeds, maxWalk: maxWalk}
	g.generations = []*internalTable[K, V]{
		newInternalTable[K, V](initialCapacity, maxWalk, hasher),
	}
	return g
}

func (g *growableMap[K, V]) active() *internalTable[K, V] {
	return g.generations[len(g.generations)-1]
}

// grow allocates a new generation of double the size of the current active
// one and makes it the active table (spec.md §4.3: "|T_{i+1}| = 2·|T_i|").
func (g *growableMap[K, V]) grow() {
	hasher := newKeyHasher[K](g.seeds)
	newSize := g.active().capacity() * 2
	g.generations = append(g.generations, newInternalTable[K, V](newSize, g.maxWalk, hasher))
}

// lookup searches generations from newest to oldest (spec.md §4.3), which
// is the conventional order even though this design has no stale entries
// and so any order is correct.
func (g *growableMap[K, V]) lookup(k K) (V, bool) {
	for i := len(g.generations) - 1; i >= 0; i-- {
		if v, ok := g.generations[i].lookup(k); ok {
			return v, ok
		}
	}
	var zero V
	return zero, false
}

func (g *growableMap[K, V]) contains(k K) bool {
	for i := len(g.generations) - 1; i >= 0; i-- {
		if g.generations[i].contains(k) {
			return true
		}
	}
	return false
}

// remove finds and removes k from whichever generation holds it.
func (g *growableMap[K, V]) remove(k K) bool {
	for i := len(g.generations) - 1; i >= 0; i-- {
		if g.generations[i].remove(k) {
			return true
		}
	}
	return false
}

// insertUnique is the Map entry point (spec.md §4.3's uniqueness
// precondition): verify k is absent across all generations before
// inserting. Returns false, with no mutation, if k is already present.
func (g *growableMap[K, V]) insertUnique(k K, v V) bool {
	if g.contains(k) {
		return false
	}
	g.insertAny(k, v)
	return true
}

// insertAny is the MultiMap entry point: no uniqueness check, always
// succeeds. It is also the primitive insertUnique builds on once it has
// decided the key is new.
//
// On internalTable.insert returning Full, the one entry the walk left
// without a slot in Tk is carried forward into a newly grown generation.
// That entry is usually a resident evicted along the walk, but when the
// walk cycles it can be the caller's own (k, v); either way every other
// entry is still in Tk, so nothing is lost.
func (g *growableMap[K, V]) insertAny(k K, v V) {
	curKey, curVal := k, v
	for {
		out := g.active().insert(curKey, curVal)
		if out.inserted {
			return
		}
		g.grow()
		curKey, curVal = out.overflowKey, out.overflowVal
	}
}

// lookupAll collects every value stored under k across all generations
// (ADDED for MultiMap.Lookup; spec.md §4.4). Order is newest generation
// first, and within a generation undefined between the two candidate
// positions.
func (g *growableMap[K, V]) lookupAll(k K) []V {
	var out []V
	for i := len(g.generations) - 1; i >= 0; i-- {
		out = g.generations[i].collectMatches(k, out)
	}
	return out
}

// removeOne removes a single occurrence of k, searching generations newest
// to oldest (ADDED for MultiMap.Remove; spec.md §4.4).
func (g *growableMap[K, V]) removeOne(k K) bool {
	return g.remove(k)
}

// removeAll removes every occurrence of k across all generations and
// reports how many were removed (ADDED for MultiMap.RemoveAll).
func (g *growableMap[K, V]) removeAll(k K) int {
	n := 0
	for i := len(g.generations) - 1; i >= 0; i-- {
		n += g.generations[i].removeAll(k)
	}
	return n
}

func (g *growableMap[K, V]) size() int {
	n := 0
	for _, t := range g.generations {
		n += t.count
	}
	return n
}

// Stats reports the generation layout of a GrowableMap (ADDED per
// SPEC_FULL.md §4.3, grounded on
// other_examples/tildeleb-cuckoo__cuckoo.go's public Counters block).
type Stats struct {
	Generations int
	Capacity    int
	Len         int
}

func (g *growableMap[K, V]) stats() Stats {
	s := Stats{Generations: len(g.generations)}
	for _, t := range g.generations {
		s.Capacity += t.capacity()
		s.Len += t.count
	}
	return s
}
