package dblock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var writeSet = LockSet{
	Write: []Resource{Comments, Revisions},
	Read:  []Resource{Pages},
}

func TestAcquireRelease(t *testing.T) {
	l := Default()

	release, err := l.Acquire(context.Background(), writeSet)
	require.NoError(t, err)
	release()

	// The full set is free again.
	release, err = l.Acquire(context.Background(), writeSet)
	require.NoError(t, err)
	release()
}

func TestUnknownResource(t *testing.T) {
	l := New(Comments)

	_, err := l.Acquire(context.Background(), LockSet{Write: []Resource{Revisions}})
	assert.ErrorContains(t, err, "unknown resource")

	// The failed acquisition must not leak claims on known resources.
	release, err := l.Acquire(context.Background(), LockSet{Write: []Resource{Comments}})
	require.NoError(t, err)
	release()
}

func TestWriterExcludesWriter(t *testing.T) {
	l := Default()

	release, err := l.Acquire(context.Background(), writeSet)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, writeSet)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	release, err = l.Acquire(context.Background(), writeSet)
	require.NoError(t, err)
	release()
}

func TestReadersShareWritersExclude(t *testing.T) {
	l := Default()
	readSet := LockSet{Read: []Resource{Pages}}

	releaseA, err := l.Acquire(context.Background(), readSet)
	require.NoError(t, err)
	releaseB, err := l.Acquire(context.Background(), readSet)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, LockSet{Write: []Resource{Pages}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	releaseA()
	releaseB()

	release, err := l.Acquire(context.Background(), LockSet{Write: []Resource{Pages}})
	require.NoError(t, err)
	release()
}

func TestCanceledAcquireHoldsNothing(t *testing.T) {
	l := Default()

	release, err := l.Acquire(context.Background(), LockSet{Write: []Resource{Revisions}})
	require.NoError(t, err)

	// Blocks on revisions after having claimed comments; cancellation must
	// give the partial claim back.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, writeSet)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	release, err = l.Acquire(context.Background(), writeSet)
	require.NoError(t, err)
	release()
}

// TestWritersAreTotallyOrdered drives many concurrent writers through the
// posting lock set and checks that no two ever hold it at once, which is the
// invariant the revision total order rests on.
func TestWritersAreTotallyOrdered(t *testing.T) {
	l := Default()

	const writers = 32
	var inCritical int32
	var maxSeen int32
	var order []int

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()

			release, err := l.Acquire(context.Background(), writeSet)
			if err != nil {
				t.Error(err)
				return
			}
			defer release()

			cur := atomic.AddInt32(&inCritical, 1)
			if cur > atomic.LoadInt32(&maxSeen) {
				atomic.StoreInt32(&maxSeen, cur)
			}
			order = append(order, n)
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inCritical, -1)
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, maxSeen, "two writers held the lock at once")
	assert.Len(t, order, writers)
}
