package locking

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestUnit_SharedAccessReportsNotMutable(t *testing.T) {
	u := NewUnit("proj")
	if u.SharedAccess().HasMutableState() {
		t.Fatal("shared access must not report mutable state")
	}
	if !u.MutableAccess().HasMutableState() {
		t.Fatal("mutable access must report mutable state")
	}
}

func TestUnit_LenientStateBlocksWhileUnitHeld(t *testing.T) {
	u := NewUnit("proj")
	u.Lock()

	entered := make(chan struct{})
	go func() {
		u.SharedAccess().WithLenientState(func() {})
		close(entered)
	}()

	select {
	case <-entered:
		t.Fatal("lenient access granted while unit held exclusively")
	case <-time.After(20 * time.Millisecond):
	}

	u.Unlock()
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("lenient access never granted after unit released")
	}
}

func TestOperationLock_MutualExclusion(t *testing.T) {
	l := &OperationLock{}
	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithLock(func() error {
				n := atomic.AddInt32(&active, 1)
				if n > atomic.LoadInt32(&maxActive) {
					atomic.StoreInt32(&maxActive, n)
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	if maxActive != 1 {
		t.Fatalf("expected single holder, saw %d concurrent", maxActive)
	}
}
