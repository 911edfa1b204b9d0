package store

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/pebble"

	"threadb/pkg/logger"
)

var db *pebble.DB

// Entry is one key/value pair returned by a prefix scan. Both slices are
// copies owned by the caller.
type Entry struct {
	Key   []byte
	Value []byte
}

// Open opens (or creates) a Pebble database at the given path and keeps a
// global handle for the lifetime of the process. Callers treat a failure
// here as fatal; the server cannot start without its store.
func Open(path string) error {
	var err error
	logger.Info("opening_pebble_db", "path", path)
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err)
		return err
	}
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// Get returns the value stored under key. The second return value is false
// when the key is absent; an error is returned only for real engine
// failures.
func Get(key []byte) ([]byte, bool, error) {
	if db == nil {
		return nil, false, fmt.Errorf("pebble not opened; call store.Open first")
	}
	v, closer, err := db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		getFailures.Inc()
		logger.Error("get_key_failed", "key", string(key), "error", err)
		return nil, false, err
	}
	out := append([]byte(nil), v...)
	if closer != nil {
		_ = closer.Close()
	}
	gets.Inc()
	return out, true, nil
}

// Put writes value under key with a synced write, so the record is durable
// before the call returns.
func Put(key, value []byte) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	if err := db.Set(key, value, pebble.Sync); err != nil {
		putFailures.Inc()
		logger.Error("put_key_failed", "key", string(key), "error", err)
		return err
	}
	puts.Inc()
	logger.Debug("put_key_ok", "key", string(key), "len", len(value))
	return nil
}

// ScanPrefix returns all key/value pairs whose key starts with prefix, in
// key order. Each call opens a fresh iterator, so scans are restartable and
// see a consistent snapshot of the store.
func ScanPrefix(prefix []byte) ([]Entry, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []Entry
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		k := append([]byte(nil), iter.Key()...)
		v := append([]byte(nil), iter.Value()...)
		out = append(out, Entry{Key: k, Value: v})
	}
	scans.Inc()
	return out, iter.Error()
}

// CountPrefix returns the number of keys that start with prefix.
func CountPrefix(prefix []byte) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("pebble not opened; call store.Open first")
	}
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return 0, err
	}
	defer iter.Close()
	n := 0
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		n++
	}
	scans.Inc()
	return n, iter.Error()
}
