package cuckoomap

import (
	"math/bits"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardedMap_ConcurrentInsertAndLookup(t *testing.T) {
	sm := NewSharded[int, int](64, 8)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				k := base*1000 + i
				assert.True(t, sm.Insert(k, k*k))
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 800, sm.Size())
	for w := 0; w < 8; w++ {
		for i := 0; i < 100; i++ {
			k := w*1000 + i
			v, ok := sm.Lookup(k)
			require.True(t, ok)
			require.Equal(t, k*k, v)
		}
	}
}

func TestNewSharded_RequiresPowerOfTwoShardCount(t *testing.T) {
	require.Panics(t, func() { NewSharded[int, int](16, 3) })
	require.NotPanics(t, func() { NewSharded[int, int](16, 4) })
}

func TestShardedMultiMap_DuplicateKeysAndRemoveAll(t *testing.T) {
	smm := NewShardedMultiMap[string, int](16, 4)
	smm.Insert("k", 1)
	smm.Insert("k", 2)

	require.ElementsMatch(t, []int{1, 2}, smm.Lookup("k"))
	require.Equal(t, 2, smm.Size())

	n := smm.RemoveAll("k")
	require.Equal(t, 2, n)
	require.False(t, smm.Contains("k"))
}

func TestShardedMap_ShardSelectionUsesHighBits(t *testing.T) {
	// With 4 shards the indexer uses the top 2 bits of h1(k); construct an
	// indexer directly and confirm every shard index is those bits and in
	// range.
	idx := newShardIndexer[int](4, newHashSeeds())
	for i := 0; i < 1000; i++ {
		s := idx.shardOf(i)
		require.Equal(t, int(idx.hasher.h1(i)>>(bits.UintSize-2)), s)
		require.GreaterOrEqual(t, s, 0)
		require.Less(t, s, 4)
	}
}
