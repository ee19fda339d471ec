package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLockSerializesPerKey(t *testing.T) {
	kl := newKeyLock()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := kl.lock("A")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestKeyLockReleasesEntries(t *testing.T) {
	kl := newKeyLock()

	unlock := kl.lock("A")
	kl.mu.Lock()
	assert.Len(t, kl.locks, 1)
	kl.mu.Unlock()

	unlock()
	kl.mu.Lock()
	assert.Empty(t, kl.locks, "no entry may outlive its holders")
	kl.mu.Unlock()
}

func TestKeyLockIndependentKeys(t *testing.T) {
	kl := newKeyLock()

	unlockA := kl.lock("A")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := kl.lock("B")
		unlockB()
		close(done)
	}()
	<-done
}
