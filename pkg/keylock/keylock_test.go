package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyLock_MutualExclusion(t *testing.T) {
	t.Parallel()
	kl := New()

	const workers = 32
	var (
		wg      sync.WaitGroup
		counter int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := kl.Lock(42)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)

	kl.mu.Lock()
	defer kl.mu.Unlock()
	require.Empty(t, kl.locks, "entries must be dropped after release")
}

func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()
	kl := New()

	unlockA := kl.Lock(1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := kl.Lock(2)
		unlockB()
		close(done)
	}()
	<-done
}
