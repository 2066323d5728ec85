package interview

import (
	"sync"
	"testing"
)

func TestSessionLocks_MutualExclusion(t *testing.T) {
	locks := newSessionLocks()

	const workers = 32
	counter := 0

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("s1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter = %d, want %d", counter, workers)
	}
}

func TestSessionLocks_EntriesDroppedAfterRelease(t *testing.T) {
	locks := newSessionLocks()

	unlock := locks.Lock("s1")
	unlock()

	locks.mu.Lock()
	n := len(locks.locks)
	locks.mu.Unlock()
	if n != 0 {
		t.Fatalf("live entries = %d, want 0", n)
	}
}

func TestSessionLocks_IndependentSessions(t *testing.T) {
	locks := newSessionLocks()

	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
}
