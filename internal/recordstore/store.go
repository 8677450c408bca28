// Package recordstore implements flat files of fixed-size binary records
// addressed by offset, with blocking whole-file and record-range locking.
// A record's offset (index * record size) doubles as its storage address;
// records are never deleted or moved, so offsets are stable for the life
// of the file.
//
// There is deliberately no caching layer: every operation re-reads the file
// under its lock, so the freshest committed state is always observed.
package recordstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
)

// Codec describes how one record type maps onto its fixed-size slot.
type Codec[T any] struct {
	// Size is the exact on-disk record width in bytes.
	Size int
	// Key extracts the integer primary key used by FindByKey and NextID.
	Key func(T) int64
	// Marshal packs rec into buf, which is exactly Size bytes.
	Marshal func(rec T, buf []byte)
	// Unmarshal unpacks a record from buf, which is exactly Size bytes.
	Unmarshal func(buf []byte) T
}

// Store is one flat record file plus its lock table.
//
// Locking is layered, not implicit: Scan, FindByKey, NextID, Append,
// ReadAt and WriteAt touch the file without taking locks, and exist so
// that the locked wrappers (Create, View, Update, SnapshotScan) and
// multi-step callers holding explicit locks can compose them. Callers
// outside this package should reach for the locked forms first.
type Store[T any] struct {
	f      *os.File
	path   string
	codec  Codec[T]
	floor  int64
	locker *RangeLocker
}

// Open opens (creating if absent) the record file at path. idFloor is the
// type-specific starting value for NextID: the first allocated ID is
// idFloor+1 when the file is empty.
func Open[T any](path string, codec Codec[T], idFloor int64) (*Store[T], error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open record store %s: %w: %w", path, apperrors.ErrIO, err)
	}
	return &Store[T]{
		f:      f,
		path:   path,
		codec:  codec,
		floor:  idFloor,
		locker: NewRangeLocker(),
	}, nil
}

func (s *Store[T]) Close() error { return s.f.Close() }

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// RecordSize returns the fixed slot width in bytes.
func (s *Store[T]) RecordSize() int64 { return int64(s.codec.Size) }

// Count returns the number of complete records currently in the file.
func (s *Store[T]) Count() (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w: %w", s.path, apperrors.ErrIO, err)
	}
	return info.Size() / int64(s.codec.Size), nil
}

// Scan reads records from offset 0 until EOF or a short read, calling fn
// for each. fn returning false stops the scan early. Scan takes no lock;
// use SnapshotScan when the enumeration must see a consistent file.
func (s *Store[T]) Scan(fn func(offset int64, rec T) bool) error {
	buf := make([]byte, s.codec.Size)
	for offset := int64(0); ; offset += int64(s.codec.Size) {
		n, err := s.f.ReadAt(buf, offset)
		if n < s.codec.Size {
			if err == nil || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read %s at %d: %w: %w", s.path, offset, apperrors.ErrIO, err)
		}
		if !fn(offset, s.codec.Unmarshal(buf)) {
			return nil
		}
	}
}

// FindByKey scans for the first record whose key matches. Duplicate keys
// are not rejected on Append, so first match wins silently.
func (s *Store[T]) FindByKey(key int64) (int64, T, error) {
	var (
		found   bool
		foundAt int64
		rec     T
	)
	err := s.Scan(func(offset int64, r T) bool {
		if s.codec.Key(r) == key {
			found, foundAt, rec = true, offset, r
			return false
		}
		return true
	})
	if err != nil {
		return 0, rec, err
	}
	if !found {
		return 0, rec, fmt.Errorf("key %d in %s: %w", key, s.path, apperrors.ErrNotFound)
	}
	return foundAt, rec, nil
}

// NextID returns max(existing keys, floor)+1. The result is only unique if
// the caller holds the whole-file exclusive lock across NextID and the
// subsequent Append; Create does exactly that.
func (s *Store[T]) NextID() (int64, error) {
	maxID := s.floor
	err := s.Scan(func(_ int64, r T) bool {
		if k := s.codec.Key(r); k > maxID {
			maxID = k
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// ReadAt reads the record slot at offset.
func (s *Store[T]) ReadAt(offset int64) (T, error) {
	var zero T
	buf := make([]byte, s.codec.Size)
	if _, err := s.f.ReadAt(buf, offset); err != nil {
		return zero, fmt.Errorf("read %s at %d: %w: %w", s.path, offset, apperrors.ErrIO, err)
	}
	return s.codec.Unmarshal(buf), nil
}

// WriteAt overwrites exactly one record slot; the file length never
// changes.
func (s *Store[T]) WriteAt(offset int64, rec T) error {
	buf := make([]byte, s.codec.Size)
	s.codec.Marshal(rec, buf)
	if _, err := s.f.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("write %s at %d: %w: %w", s.path, offset, apperrors.ErrIO, err)
	}
	return nil
}

// Append writes rec at end-of-file and returns its offset.
func (s *Store[T]) Append(rec T) (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w: %w", s.path, apperrors.ErrIO, err)
	}
	offset := info.Size()
	if err := s.WriteAt(offset, rec); err != nil {
		return 0, err
	}
	return offset, nil
}

// Create allocates the next ID and appends the record built by build, all
// under the whole-file exclusive lock so concurrent allocators serialize.
func (s *Store[T]) Create(build func(id int64) (T, error)) (T, error) {
	var zero T
	unlock := s.locker.LockFile(true)
	defer unlock()

	id, err := s.NextID()
	if err != nil {
		return zero, err
	}
	rec, err := build(id)
	if err != nil {
		return zero, err
	}
	if _, err := s.Append(rec); err != nil {
		return zero, err
	}
	return rec, nil
}

// View locates the record for key, then re-reads it under a shared record
// lock and passes it to fn.
func (s *Store[T]) View(key int64, fn func(rec T) error) error {
	offset, _, err := s.FindByKey(key)
	if err != nil {
		return err
	}
	unlock := s.Lock(offset, false)
	defer unlock()

	rec, err := s.ReadAt(offset)
	if err != nil {
		return err
	}
	return fn(rec)
}

// Update locates the record for key, then under an exclusive record lock
// re-reads it, lets fn mutate it, and writes it back. An error from fn
// aborts the write and is returned unchanged, leaving the record as it
// was.
func (s *Store[T]) Update(key int64, fn func(rec *T) error) error {
	offset, _, err := s.FindByKey(key)
	if err != nil {
		return err
	}
	unlock := s.Lock(offset, true)
	defer unlock()

	rec, err := s.ReadAt(offset)
	if err != nil {
		return err
	}
	if err := fn(&rec); err != nil {
		return err
	}
	return s.WriteAt(offset, rec)
}

// SnapshotScan runs Scan under the whole-file shared lock, so in-place
// writers and appenders are excluded for the duration.
func (s *Store[T]) SnapshotScan(fn func(offset int64, rec T) bool) error {
	unlock := s.locker.LockFile(false)
	defer unlock()
	return s.Scan(fn)
}

// Lock takes a blocking lock over the single record slot at offset and
// returns the release function. Multi-step flows (loan approval) use this
// directly with ReadAt/WriteAt.
func (s *Store[T]) Lock(offset int64, exclusive bool) (unlock func()) {
	return s.locker.Lock(offset, int64(s.codec.Size), exclusive)
}

// LockFile takes a blocking whole-file lock and returns the release
// function.
func (s *Store[T]) LockFile(exclusive bool) (unlock func()) {
	return s.locker.LockFile(exclusive)
}
