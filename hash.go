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
	"encoding/binary"
	"unsafe"

	metro "github.com/dgryski/go-metro"
)

// hashFn is the shape of the hash function the Go runtime generates for
// map[K]struct{}: (pointer to key, seed) -> hash. Extracting it lets us hash
// an arbitrary comparable K without asking callers for a byte encoding.
type hashFn func(unsafe.Pointer, uintptr) uintptr

//go:linkname runtimeFastrand64 runtime.fastrand64
func runtimeFastrand64() uint64

// noescape hides a pointer from escape analysis. It is the identity
// function but the compiler can't tell, which keeps hot-path hashing from
// forcing keys onto the heap. See runtime/stubs.go for the original.
//
//go:nosplit
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x) //nolint:govet
}

// getRuntimeHasher returns the hash function the built-in map would use to
// hash keys of type K.
func getRuntimeHasher[K comparable]() hashFn {
	a := any((map[K]struct{})(nil))
	return (*rtEface)(unsafe.Pointer(&a)).typ.Hasher
}

// rtEface mirrors runtime/runtime2.go's eface.
type rtEface struct {
	typ  *rtMapType
	data unsafe.Pointer
}

// rtMapType mirrors the prefix of internal/abi's MapType that we need: the
// embedded Type header, the three type pointers, then the Hasher field.
type rtMapType struct {
	rtType
	Key    *rtType
	Elem   *rtType
	Bucket *rtType
	Hasher func(unsafe.Pointer, uintptr) uintptr
}

// rtType mirrors internal/abi/type.go's Type field for field, so that the
// fields rtMapType appends after it land at the runtime's offsets.
type rtType struct {
	Size_       uintptr
	PtrBytes    uintptr
	Hash        uint32
	TFlag       uint8
	Align_      uint8
	FieldAlign_ uint8
	Kind_       uint8
	Equal       func(unsafe.Pointer, unsafe.Pointer) bool
	GCData      *byte
	Str         int32
	PtrToThis   int32
}

// hashSeeds holds the three seeds used to derive h1, h2 and the fingerprint
// from the same extracted runtime hasher. Distinct seeds are enough to make
// the three derived values behave as statistically independent (spec.md
// §4.1): "a single hash family with two seeds suffices."
type hashSeeds struct {
	seed1 uintptr
	seed2 uintptr
	seed3 uintptr
}

func newHashSeeds() hashSeeds {
	return hashSeeds{
		seed1: uintptr(runtimeFastrand64()),
		seed2: uintptr(runtimeFastrand64()),
		seed3: uintptr(runtimeFastrand64()),
	}
}

// withUserSeeds rebuilds the seed trio from two caller-supplied seeds
// (the hash_seeds configuration knob, spec.md §6), keeping a derived third
// seed for the fingerprint so callers only need to reason about h1/h2.
func withUserSeeds(seed1, seed2 uint64) hashSeeds {
	return hashSeeds{
		seed1: uintptr(seed1),
		seed2: uintptr(seed2),
		seed3: uintptr(seed1 ^ seed2 ^ altPositionConstant),
	}
}

// keyHasher bundles the extracted runtime hasher with a table's seed trio.
type keyHasher[K comparable] struct {
	hash  hashFn
	seeds hashSeeds
}

func newKeyHasher[K comparable](seeds hashSeeds) keyHasher[K] {
	return keyHasher[K]{hash: getRuntimeHasher[K](), seeds: seeds}
}

func (h keyHasher[K]) h1(k K) uintptr {
	return h.hash(noescape(unsafe.Pointer(&k)), h.seeds.seed1)
}

func (h keyHasher[K]) h2(k K) uintptr {
	return h.hash(noescape(unsafe.Pointer(&k)), h.seeds.seed2)
}

// fingerprint derives a non-zero 16-bit tag from k (spec.md §4.1). Zero
// fingerprints are remapped to 1 so that tag == 0 can be reserved to mean
// "slot empty" regardless of key/value contents.
func (h keyHasher[K]) fingerprint(k K) uint16 {
	raw := h.hash(noescape(unsafe.Pointer(&k)), h.seeds.seed3)
	fp := uint16(raw >> 48)
	if fp == 0 {
		fp = 1
	}
	return fp
}

// altPositionConstant is the Fibonacci-hashing mix constant reused from
// other_examples/aleksraiden-mt-manager__sharded_map.go's shard-selection
// multiplier. Here it salts the fingerprint-only alternate-position
// identity below and the third hash seed withUserSeeds derives.
const altPositionConstant = 0x9e3779b97f4a7c15

// altPositionFromFingerprint recovers the alternate slot position of an
// entry from its primary position and fingerprint alone, with no access to
// the original key. This is required by the filter (tagTable), whose slots
// never store the key (spec.md §4.1, "essential... during displacement
// because the original key, though present [in a keyed table], may be more
// expensive to re-hash" — here it is *absent*, not just expensive).
//
// Grounded on the vendored panmari/cuckoofilter's getAltIndex
// (Psiphon-Labs-psiphon-tunnel-core/vendor/.../util.go): fingerprint bytes
// are hashed with an independent seed and XORed into the primary position,
// which is its own inverse: altPositionFromFingerprint(altPositionFromFingerprint(p, fp), fp) == p.
func altPositionFromFingerprint(p1 uintptr, fp uint16, mask uintptr) uintptr {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], fp)
	mix := uintptr(metro.Hash64(buf[:], altPositionConstant))
	return (p1 ^ mix) & mask
}
