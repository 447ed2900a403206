package lockmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockMapExclusion(t *testing.T) {
	lm := MkLockMap(16)

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lm.Acquire(3)
			counter++
			lm.Release(3)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLockMapIndependentSlots(t *testing.T) {
	lm := MkLockMap(16)

	// a held lock on one slot must not block another slot
	lm.Acquire(1)
	done := make(chan struct{})
	go func() {
		lm.Acquire(2)
		lm.Release(2)
		close(done)
	}()
	<-done
	lm.Release(1)
}

func TestLockMapSharedReaders(t *testing.T) {
	lm := MkLockMap(4)

	lm.RAcquire(0)
	done := make(chan struct{})
	go func() {
		lm.RAcquire(0)
		lm.RRelease(0)
		close(done)
	}()
	<-done
	lm.RRelease(0)
}
