package recordstore

import "sync"

// RangeLocker is an in-process blocking byte-range lock table for one file.
// It mirrors fcntl record-lock semantics: a request for (start, length,
// exclusive) waits until no granted lock overlaps it in a conflicting mode.
// length 0 means "to the end of the file", which is how whole-file locks
// are taken. Wake order among waiters is unspecified; there are no
// timeouts.
//
// One process owns all store files, so an in-process table is sufficient
// and avoids OS advisory-lock portability problems.
type RangeLocker struct {
	mu      sync.Mutex
	changed *sync.Cond
	granted map[*grant]struct{}
}

type grant struct {
	start     int64
	length    int64 // 0 = unbounded
	exclusive bool
}

// NewRangeLocker returns an empty lock table.
func NewRangeLocker() *RangeLocker {
	l := &RangeLocker{granted: make(map[*grant]struct{})}
	l.changed = sync.NewCond(&l.mu)
	return l
}

func (g *grant) overlaps(start, length int64) bool {
	if g.length == 0 && length == 0 {
		return true
	}
	if g.length == 0 {
		return start+length > g.start
	}
	if length == 0 {
		return g.start+g.length > start
	}
	return g.start < start+length && start < g.start+g.length
}

// Lock blocks until the requested range is grantable, grants it, and
// returns the release function. Shared requests coexist on overlapping
// ranges; any overlap involving an exclusive grant or an exclusive request
// conflicts.
func (l *RangeLocker) Lock(start, length int64, exclusive bool) (unlock func()) {
	g := &grant{start: start, length: length, exclusive: exclusive}
	l.mu.Lock()
	for l.conflicts(g) {
		l.changed.Wait()
	}
	l.granted[g] = struct{}{}
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.granted, g)
		l.mu.Unlock()
		l.changed.Broadcast()
	}
}

// LockFile locks the whole file, shared or exclusive.
func (l *RangeLocker) LockFile(exclusive bool) (unlock func()) {
	return l.Lock(0, 0, exclusive)
}

func (l *RangeLocker) conflicts(req *grant) bool {
	for g := range l.granted {
		if (g.exclusive || req.exclusive) && g.overlaps(req.start, req.length) {
			return true
		}
	}
	return false
}
