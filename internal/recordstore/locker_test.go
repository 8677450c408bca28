package recordstore_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
)

// acquires reports whether the lock request is granted within the wait
// window. Lock waits are indefinite, so tests use a timeout instead of
// asserting on wake order.
func acquires(l *recordstore.RangeLocker, start, length int64, exclusive bool) (bool, func()) {
	type result struct{ unlock func() }
	done := make(chan result, 1)
	go func() {
		done <- result{l.Lock(start, length, exclusive)}
	}()
	select {
	case r := <-done:
		return true, r.unlock
	case <-time.After(100 * time.Millisecond):
		go func() {
			r := <-done // let the goroutine finish and drop the lock
			r.unlock()
		}()
		return false, nil
	}
}

func TestSharedLocksCoexist(t *testing.T) {
	l := recordstore.NewRangeLocker()

	unlock1 := l.Lock(0, 16, false)
	ok, unlock2 := acquires(l, 0, 16, false)
	require.True(t, ok, "two shared locks on the same range must coexist")
	unlock1()
	unlock2()
}

func TestExclusiveLockExcludes(t *testing.T) {
	l := recordstore.NewRangeLocker()

	unlock := l.Lock(16, 16, true)
	ok, _ := acquires(l, 16, 16, true)
	assert.False(t, ok, "overlapping exclusive lock must block")
	ok, _ = acquires(l, 16, 16, false)
	assert.False(t, ok, "shared lock under an exclusive holder must block")

	ok, other := acquires(l, 32, 16, true)
	require.True(t, ok, "disjoint ranges must not conflict")
	other()
	unlock()
}

func TestWholeFileLockCoversEveryRecord(t *testing.T) {
	l := recordstore.NewRangeLocker()

	unlock := l.LockFile(true)
	ok, _ := acquires(l, 8*1024, 16, false)
	assert.False(t, ok, "whole-file exclusive lock must cover far offsets")
	unlock()

	unlock = l.Lock(64, 16, true)
	ok, _ = acquires(l, 0, 0, false)
	assert.False(t, ok, "whole-file shared request must wait for an exclusive record lock")
	unlock()
}

func TestReleaseWakesWaiter(t *testing.T) {
	l := recordstore.NewRangeLocker()

	unlock := l.Lock(0, 16, true)
	granted := make(chan func(), 1)
	go func() {
		granted <- l.Lock(0, 16, true)
	}()

	select {
	case <-granted:
		t.Fatal("second exclusive lock granted while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case u := <-granted:
		u()
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by release")
	}
}

func TestContendedRangeSerializes(t *testing.T) {
	l := recordstore.NewRangeLocker()

	var inside, max int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(0, 16, true)
			mu.Lock()
			inside++
			if inside > max {
				max = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, max, "at most one exclusive holder at a time")
}
