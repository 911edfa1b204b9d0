package board

import (
	"threadb/pkg/keys"
	"threadb/pkg/store"
)

// Identifiers are derived by counting existing records under a prefix and
// adding one; no sequence counter is persisted. This keeps numbering
// identical to the historical on-disk format (sequential creates yield
// 1..N), but it is a count-then-increment scheme, not an atomic counter:
// two concurrent allocations in the same scope can observe the same count,
// produce the same id, and the later write silently overwrites the earlier
// record. That race is a documented limitation of the format, demonstrated
// by TestConcurrentReplyIDCollision; do not "fix" it without migrating the
// numbering scheme.

// NextThreadID returns the id for a new thread: one past the number of
// threads currently in the store.
func NextThreadID() (int32, error) {
	n, err := store.CountPrefix(keys.ThreadPrefix())
	if err != nil {
		return 0, &StorageError{Op: "count threads", Err: err}
	}
	return int32(n) + 1, nil
}

// NextReplyID returns the id for a new reply under parentID: one past the
// number of replies that thread currently has.
func NextReplyID(parentID int32) (int32, error) {
	n, err := store.CountPrefix(keys.ReplyPrefix(parentID))
	if err != nil {
		return 0, &StorageError{Op: "count replies", Err: err}
	}
	return int32(n) + 1, nil
}
