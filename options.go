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

import "math/bits"

// config collects the constructor-time knobs spec.md §6 enumerates:
// max_walk and hash_seeds. initial_capacity and shard_count are plain
// constructor arguments rather than options, since every container
// requires them.
type config struct {
	maxWalk  int
	seed1    uint64
	seed2    uint64
	seedsSet bool
}

// Option configures a Map, MultiMap, Filter, or sharded wrapper at
// construction time. See WithMaxWalk and WithHashSeeds.
//
// Modeled on cockroachdb-swiss/options.go's functional-options interface,
// simplified to drop the type parameter that repo carries for its
// value-typed Allocator option: nothing here depends on V.
type Option interface {
	apply(c *config)
}

type maxWalkOption struct{ n int }

func (o maxWalkOption) apply(c *config) { c.maxWalk = o.n }

// WithMaxWalk overrides the displacement-walk budget (spec.md §4.2's
// max_walk) instead of deriving it from the table size.
func WithMaxWalk(n int) Option { return maxWalkOption{n} }

type hashSeedsOption struct{ seed1, seed2 uint64 }

func (o hashSeedsOption) apply(c *config) {
	c.seed1, c.seed2 = o.seed1, o.seed2
	c.seedsSet = true
}

// WithHashSeeds overrides the default random seeds for h1 and h2
// (spec.md §6's hash_seeds). Useful for reproducible tests; see
// map_test.go's TestMap_WithHashSeedsIsReproducible.
func WithHashSeeds(seed1, seed2 uint64) Option { return hashSeedsOption{seed1, seed2} }

func buildConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o.apply(&c)
	}
	return c
}

func (c config) resolveSeeds() hashSeeds {
	if c.seedsSet {
		return withUserSeeds(c.seed1, c.seed2)
	}
	return newHashSeeds()
}

// normalizeCapacity rounds n up to a power of two, floored at minCapacity
// (spec.md §6: "rounded up to a power of two, lower-bounded at some
// minimum (e.g. 16)"). It panics on a non-positive n, the only
// configuration error a capacity argument can carry (spec.md §7).
func normalizeCapacity(n int) int {
	if n <= 0 {
		panic(newConfigError("cuckoomap: initial capacity must be positive"))
	}
	if n < minCapacity {
		return minCapacity
	}
	return 1 << bits.Len(uint(n-1))
}

// validateShardCount enforces spec.md §6/§7's "shard_count: required to be
// a power of two" and fails fast at construction on violation.
func validateShardCount(n int) {
	if n <= 0 || n&(n-1) != 0 {
		panic(newConfigError("cuckoomap: shard count must be a positive power of two"))
	}
}
