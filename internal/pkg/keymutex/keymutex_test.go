package keymutex_test

import (
	"sync"
	"testing"
	"time"

	"tablero/internal/pkg/keymutex"
)

func TestExclusionPerKey(t *testing.T) {
	km := keymutex.New()

	km.Lock("a")

	acquired := make(chan struct{})
	go func() {
		km.Lock("a")
		close(acquired)
		km.Unlock("a")
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held key")
	case <-time.After(50 * time.Millisecond):
	}

	km.Unlock("a")

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never acquired the key after release")
	}
}

func TestIndependentKeysDoNotBlock(t *testing.T) {
	km := keymutex.New()

	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("independent key was blocked")
	}
}

func TestLockAllIsDeadlockFree(t *testing.T) {
	km := keymutex.New()

	// opposite acquisition orders; sorted locking must not deadlock
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			keys := []string{"x", "y", "z"}
			km.LockAll(keys)
			km.UnlockAll(keys)
		}()
		go func() {
			defer wg.Done()
			keys := []string{"z", "y", "x"}
			km.LockAll(keys)
			km.UnlockAll(keys)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("LockAll deadlocked")
	}
}

func TestLockAllDeduplicatesKeys(t *testing.T) {
	km := keymutex.New()

	keys := []string{"a", "a", "b"}
	km.LockAll(keys)
	km.UnlockAll(keys)

	// a second pass over the same keys must still work
	km.LockAll(keys)
	km.UnlockAll(keys)
}
