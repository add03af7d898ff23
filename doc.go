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

// Package cuckoomap implements the cuckoo hashing discipline: a
// fixed-capacity slot table with two candidate positions per key,
// displacement ("kick-out") on collision, and a growth policy that
// allocates a larger generation rather than blocking forever on a failed
// displacement walk.
//
// Unlike Go's builtin map or an open-addressing/linear-probe table, a
// cuckoo table examines at most two slots per lookup, at the cost of
// amortized, occasionally expensive inserts. The containers here keep
// every generation they grow and search each one in turn, so a lookup
// examines at most two slots per generation. It suits read-heavy workloads where predictable lookup latency
// matters more than insert throughput.
//
// Four containers are built on the same displacement/growth core:
//
//   - Map: unique keys, values retained.
//   - MultiMap: duplicate keys permitted, values retained.
//   - Filter: approximate membership only; no keys or values retained.
//   - ShardedMap / ShardedMultiMap: Map/MultiMap partitioned across
//     independently-locked shards for concurrent access.
//
// None of the unsharded containers are safe for concurrent use; only the
// sharded wrappers synchronize internally.
package cuckoomap
