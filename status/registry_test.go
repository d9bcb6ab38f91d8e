package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	reg := NewRegistry()
	a := reg.Ints.Get("bots.idle")
	b := reg.Ints.Get("bots.idle")
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	a.Store(7)
	if got := reg.Int("bots.idle"); got != 7 {
		t.Errorf("Int(bots.idle) = %d, want 7", got)
	}
}

func TestRegistryReadsDoNotRegister(t *testing.T) {
	reg := NewRegistry()
	if reg.Int("missing") != 0 || reg.Float("missing") != 0 {
		t.Error("absent metrics should read as zero")
	}
	if reg.TotalCount() != 0 {
		t.Errorf("TotalCount = %d after reads, want 0", reg.TotalCount())
	}
}

func TestRangeSorted(t *testing.T) {
	reg := NewRegistry()
	for _, k := range []string{"c", "a", "b"} {
		reg.Ints.Get(k)
	}
	var keys []string
	reg.Ints.Range(func(k string, _ *atomic.Int64) { keys = append(keys, k) })
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Range order = %v, want [a b c]", keys)
	}
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := f.Get(); got != 4000 {
		t.Errorf("Get() = %g, want 4000", got)
	}
}

func TestConcurrentRegistration(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	var wg sync.WaitGroup
	ptrs := make([]*AtomicFloat, 16)
	for i := range ptrs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ptrs[i] = m.Get("engine.tick_ms")
		}()
	}
	wg.Wait()
	for i, p := range ptrs {
		if p != ptrs[0] {
			t.Fatalf("goroutine %d got a distinct pointer", i)
		}
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}
