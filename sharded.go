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

import (
	"math/bits"
	"sync"
)

// shardIndexer picks a shard from the top s bits of h1(k), disjoint from
// the low bits an individual shard's internalTable uses for intra-table
// indexing. Sharing bit ranges between shard selection and slot selection
// would correlate the two choices and give some shards systematically
// higher load.
//
// Grounded on other_examples/aleksraiden-mt-manager__sharded_map.go's
// `(id * 0x9e3779b97f4a7c15) >> (64 - shardBits)` shape; here we reuse the
// hash this module already computes for h1 rather than re-deriving one
// from a Fibonacci multiplier, since disjoint bit ranges are all that's
// required, not a second hash family.
type shardIndexer[K comparable] struct {
	hasher keyHasher[K]
	shift  uint
}

func newShardIndexer[K comparable](shardCount int, seeds hashSeeds) shardIndexer[K] {
	s := bits.TrailingZeros(uint(shardCount))
	return shardIndexer[K]{
		hasher: newKeyHasher[K](seeds),
		shift:  uint(bits.UintSize) - uint(s),
	}
}

func (x shardIndexer[K]) shardOf(k K) int {
	return int(x.hasher.h1(k) >> x.shift)
}

// ShardedMap partitions a Map's key space across S = 2^s independent
// growable maps, each behind its own mutex, so operations on different
// shards can proceed concurrently. Shards grow on their own schedule;
// there is no cross-shard operation and no global lock.
type ShardedMap[K comparable, V any] struct {
	indexer shardIndexer[K]
	shards  []mapShard[K, V]
}

type mapShard[K comparable, V any] struct {
	mu sync.Mutex
	m  *Map[K, V]
}

// NewSharded constructs a ShardedMap with shardCount shards (must be a
// power of two), each an independent Map seeded with roughly
// initialCapacity/shardCount entries of room.
func NewSharded[K comparable, V any](initialCapacity, shardCount int, opts ...Option) *ShardedMap[K, V] {
	validateShardCount(shardCount)
	c := buildConfig(opts)
	seeds := c.resolveSeeds()

	sm := &ShardedMap[K, V]{
		indexer: newShardIndexer[K](shardCount, seeds),
		shards:  make([]mapShard[K, V], shardCount),
	}
	perShard := perShardCapacity(initialCapacity, shardCount)
	for i := range sm.shards {
		sm.shards[i].m = New[K, V](perShard, withResolvedSeeds(c, seeds)...)
	}
	return sm
}

func (sm *ShardedMap[K, V]) shardFor(k K) *mapShard[K, V] {
	return &sm.shards[sm.indexer.shardOf(k)]
}

// Insert delegates to k's shard under its lock; see Map.Insert.
func (sm *ShardedMap[K, V]) Insert(k K, v V) bool {
	s := sm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Insert(k, v)
}

// Lookup delegates to k's shard under its lock; see Map.Lookup.
func (sm *ShardedMap[K, V]) Lookup(k K) (V, bool) {
	s := sm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Lookup(k)
}

// Contains delegates to k's shard under its lock; see Map.Contains.
func (sm *ShardedMap[K, V]) Contains(k K) bool {
	s := sm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Contains(k)
}

// Remove delegates to k's shard under its lock; see Map.Remove.
func (sm *ShardedMap[K, V]) Remove(k K) bool {
	s := sm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Remove(k)
}

// Size sums per-shard counts, each read under its own lock. This is not a
// single atomic snapshot across shards: a concurrent insert into a shard
// already summed, or not yet summed, can make the total stale by the time
// it's returned.
func (sm *ShardedMap[K, V]) Size() int {
	n := 0
	for i := range sm.shards {
		s := &sm.shards[i]
		s.mu.Lock()
		n += s.m.Size()
		s.mu.Unlock()
	}
	return n
}

// ShardedMultiMap partitions a MultiMap's key space the same way
// ShardedMap partitions a Map's.
type ShardedMultiMap[K comparable, V any] struct {
	indexer shardIndexer[K]
	shards  []multiMapShard[K, V]
}

type multiMapShard[K comparable, V any] struct {
	mu sync.Mutex
	m  *MultiMap[K, V]
}

// NewShardedMultiMap constructs a ShardedMultiMap with shardCount shards
// (must be a power of two).
func NewShardedMultiMap[K comparable, V any](initialCapacity, shardCount int, opts ...Option) *ShardedMultiMap[K, V] {
	validateShardCount(shardCount)
	c := buildConfig(opts)
	seeds := c.resolveSeeds()

	smm := &ShardedMultiMap[K, V]{
		indexer: newShardIndexer[K](shardCount, seeds),
		shards:  make([]multiMapShard[K, V], shardCount),
	}
	perShard := perShardCapacity(initialCapacity, shardCount)
	for i := range smm.shards {
		smm.shards[i].m = NewMultiMap[K, V](perShard, withResolvedSeeds(c, seeds)...)
	}
	return smm
}

func (smm *ShardedMultiMap[K, V]) shardFor(k K) *multiMapShard[K, V] {
	return &smm.shards[smm.indexer.shardOf(k)]
}

// Insert delegates to k's shard under its lock; see MultiMap.Insert.
func (smm *ShardedMultiMap[K, V]) Insert(k K, v V) {
	s := smm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Insert(k, v)
}

// Lookup delegates to k's shard under its lock; see MultiMap.Lookup.
func (smm *ShardedMultiMap[K, V]) Lookup(k K) []V {
	s := smm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Lookup(k)
}

// Contains delegates to k's shard under its lock; see MultiMap.Contains.
func (smm *ShardedMultiMap[K, V]) Contains(k K) bool {
	s := smm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Contains(k)
}

// Remove delegates to k's shard under its lock; see MultiMap.Remove.
func (smm *ShardedMultiMap[K, V]) Remove(k K) bool {
	s := smm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Remove(k)
}

// RemoveAll delegates to k's shard under its lock; see MultiMap.RemoveAll.
func (smm *ShardedMultiMap[K, V]) RemoveAll(k K) int {
	s := smm.shardFor(k)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.RemoveAll(k)
}

// Size sums per-shard counts, each read under its own lock; see
// ShardedMap.Size's note on staleness.
func (smm *ShardedMultiMap[K, V]) Size() int {
	n := 0
	for i := range smm.shards {
		s := &smm.shards[i]
		s.mu.Lock()
		n += s.m.Size()
		s.mu.Unlock()
	}
	return n
}

// perShardCapacity divides initialCapacity across shardCount shards,
// flooring at 1 so a small initialCapacity relative to shardCount never
// hands New/NewMultiMap a non-positive value (normalizeCapacity would
// otherwise panic; each shard's own rounding-up to minCapacity handles the
// rest).
func perShardCapacity(initialCapacity, shardCount int) int {
	n := initialCapacity / shardCount
	if n < 1 {
		n = 1
	}
	return n
}

// withResolvedSeeds rebuilds an Option list that reproduces cfg's already-
// resolved settings, so every shard's own Map/MultiMap is built with the
// same max_walk and the same shared hash_seeds the ShardedMap's own
// shardIndexer uses (otherwise shard selection and intra-shard indexing
// would silently disagree about which hash seed is "seed1").
func withResolvedSeeds(cfg config, seeds hashSeeds) []Option {
	opts := []Option{hashSeedsOption{seed1: uint64(seeds.seed1), seed2: uint64(seeds.seed2)}}
	if cfg.maxWalk > 0 {
		opts = append(opts, maxWalkOption{cfg.maxWalk})
	}
	return opts
}
