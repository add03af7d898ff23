package cuckoomap

import "testing"

func BenchmarkMap_Insert(b *testing.B) {
	m := New[int, int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Insert(i, i)
	}
}

func BenchmarkMap_Lookup(b *testing.B) {
	const n = 1 << 16
	m := New[int, int](1 << 20)
	for i := 0; i < n; i++ {
		m.Insert(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Lookup(i % n)
	}
}

func BenchmarkMultiMap_Insert(b *testing.B) {
	mm := NewMultiMap[int, int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mm.Insert(i%64, i)
	}
}

func BenchmarkFilter_Contains(b *testing.B) {
	const n = 1 << 14
	f := NewFilter[int](1 << 16)
	for i := 0; i < n; i++ {
		f.Insert(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Contains(i % n)
	}
}

func BenchmarkShardedMap_ParallelInsert(b *testing.B) {
	sm := NewSharded[int, int](1<<20, 16)
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			sm.Insert(i, i)
			i++
		}
	})
}
