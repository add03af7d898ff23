package cuckoomap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// intHasher returns a deterministic (non-runtime) hasher for int keys, so
// tests can force specific collisions instead of relying on the runtime's
// randomized seed. Mirrors
// homier-stablemap/set_test.go:TestStableSet_Tombstones's "custom hash
// function that forces collisions" technique.
func intHasher(mul uintptr) hashFn {
	return func(p unsafe.Pointer, seed uintptr) uintptr {
		k := *(*int)(p)
		return uintptr(k)*mul + seed
	}
}

func newTestTable(size int, seeds hashSeeds) *internalTable[int, string] {
	h := keyHasher[int]{hash: intHasher(2654435761), seeds: seeds}
	return newInternalTable[int, string](size, 8, h)
}

func TestInternalTable_InsertLookupRemove(t *testing.T) {
	tbl := newTestTable(16, hashSeeds{seed1: 1, seed2: 2, seed3: 3})

	out := tbl.insert(42, "answer")
	require.True(t, out.inserted)

	v, ok := tbl.lookup(42)
	require.True(t, ok)
	require.Equal(t, "answer", v)

	require.True(t, tbl.contains(42))
	require.False(t, tbl.contains(7))

	require.True(t, tbl.remove(42))
	require.False(t, tbl.remove(42))
	_, ok = tbl.lookup(42)
	require.False(t, ok)
}

func TestInternalTable_DegenerateHashReportsFullRatherThanLooping(t *testing.T) {
	// h1 == h2 == 0 for every key collapses both candidate positions onto
	// slot 0; the second insert can never find room, so the bounded walk
	// must terminate with Full instead of spinning or corrupting state.
	h := keyHasher[int]{hash: func(unsafe.Pointer, uintptr) uintptr { return 0 }, seeds: hashSeeds{}}
	tbl := newInternalTable[int, string](4, 8, h)

	out := tbl.insert(1, "one")
	require.True(t, out.inserted)

	out = tbl.insert(2, "two")
	require.True(t, out.full)
	require.Equal(t, 2, out.overflowKey)
	require.Equal(t, "two", out.overflowVal)

	// The first entry landed and stays untouched by the failed second walk.
	v, ok := tbl.lookup(1)
	require.True(t, ok)
	require.Equal(t, "one", v)
}

func TestInternalTable_ResolvesCollisionViaSecondPosition(t *testing.T) {
	// Every key's h1 collides at position 0; h2 differs per key, so the
	// second insert must land at its own p2 rather than displacing.
	h := keyHasher[int]{
		hash: func(p unsafe.Pointer, seed uintptr) uintptr {
			if seed == 100 {
				return 0
			}
			return uintptr(*(*int)(p)) + seed
		},
		seeds: hashSeeds{seed1: 100, seed2: 200, seed3: 300},
	}
	tbl := newInternalTable[int, string](16, 8, h)

	require.True(t, tbl.insert(1, "one").inserted)
	require.True(t, tbl.insert(2, "two").inserted)

	v, ok := tbl.lookup(1)
	require.True(t, ok)
	require.Equal(t, "one", v)
	v, ok = tbl.lookup(2)
	require.True(t, ok)
	require.Equal(t, "two", v)
}

func TestInternalTable_DisplacementRelocatesExistingEntry(t *testing.T) {
	// A and B first occupy positions 0 and 6 respectively (their own p1
	// and p2). C's candidate pair is exactly (0, 6) — both already taken —
	// so inserting C must displace one of them, and the displaced entry
	// must land back at ITS OWN other candidate position rather than being
	// overwritten or lost.
	h := keyHasher[int]{
		hash: func(p unsafe.Pointer, seed uintptr) uintptr {
			k := *(*int)(p)
			switch seed {
			case 1: // h1: every key collides at position 0
				return 0
			case 2: // h2
				if k == 10 {
					return 5
				}
				return 6 // 20 and 30 both land on 6
			default: // fingerprint seed; distinct per key, doesn't matter here
				return uintptr(k)
			}
		},
		seeds: hashSeeds{seed1: 1, seed2: 2, seed3: 3},
	}
	tbl := newInternalTable[int, string](16, 8, h)

	require.True(t, tbl.insert(10, "A").inserted) // lands at slot 0 (its p1)
	require.True(t, tbl.insert(20, "B").inserted) // lands at slot 6 (its p2)

	out := tbl.insert(30, "C") // both of C's candidates (0, 6) are occupied
	require.True(t, out.inserted)

	va, ok := tbl.lookup(10)
	require.True(t, ok)
	require.Equal(t, "A", va)

	vb, ok := tbl.lookup(20)
	require.True(t, ok)
	require.Equal(t, "B", vb)

	vc, ok := tbl.lookup(30)
	require.True(t, ok)
	require.Equal(t, "C", vc)
}

func TestDefaultMaxWalk(t *testing.T) {
	require.GreaterOrEqual(t, defaultMaxWalk(16), 1)
	require.LessOrEqual(t, defaultMaxWalk(1<<20), defaultMaxWalkCap)
}
