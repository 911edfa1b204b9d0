package board

import (
	"encoding/json"
	"strings"
	"time"

	"threadb/pkg/keys"
	"threadb/pkg/logger"
	"threadb/pkg/models"
	"threadb/pkg/store"
)

// CreateThread validates, allocates an id and persists a new thread. Title
// and message are trimmed; either being empty after trim is a
// ValidationError. imageURL may be empty; when set it must already point at
// a fully written upload (the caller commits the file before calling).
func CreateThread(title, message, imageURL string) (models.Thread, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" {
		return models.Thread{}, &ValidationError{Field: "title", Msg: "must not be empty"}
	}
	if message == "" {
		return models.Thread{}, &ValidationError{Field: "message", Msg: "must not be empty"}
	}

	id, err := NextThreadID()
	if err != nil {
		return models.Thread{}, err
	}
	th := models.Thread{
		ID:          id,
		Title:       title,
		Message:     message,
		LastUpdated: time.Now().Unix(),
	}
	if imageURL != "" {
		th.ImageURL = &imageURL
	}

	b, err := json.Marshal(th)
	if err != nil {
		return models.Thread{}, &StorageError{Op: "marshal thread", Err: err}
	}
	if err := store.Put(keys.ThreadKey(id), b); err != nil {
		return models.Thread{}, &StorageError{Op: "save thread", Err: err}
	}
	logger.Info("thread_created", "id", id, "title", title)
	threadsCreated.Inc()
	return th, nil
}

// GetThread returns the thread with the given id. The second return value
// is false when the record is missing or does not decode; a malformed
// record is indistinguishable from an absent one to callers.
func GetThread(id int32) (models.Thread, bool, error) {
	v, found, err := store.Get(keys.ThreadKey(id))
	if err != nil {
		return models.Thread{}, false, &StorageError{Op: "get thread", Err: err}
	}
	if !found {
		return models.Thread{}, false, nil
	}
	th, derr := decodeThread(v)
	if derr != nil {
		logger.Warn("thread_record_malformed", "id", id)
		return models.Thread{}, false, nil
	}
	return th, true, nil
}

// ListThreads returns every decodable thread record. Malformed records are
// skipped, not propagated; the result order is scan order and carries no
// meaning, Paginate sorts it.
func ListThreads() ([]models.Thread, error) {
	entries, err := store.ScanPrefix(keys.ThreadPrefix())
	if err != nil {
		return nil, &StorageError{Op: "scan threads", Err: err}
	}
	out := make([]models.Thread, 0, len(entries))
	for _, e := range entries {
		th, derr := decodeThread(e.Value)
		if derr != nil {
			logger.Warn("thread_record_skipped", "key", string(e.Key))
			continue
		}
		out = append(out, th)
	}
	return out, nil
}

// TouchThread refreshes a thread's last-activity timestamp. A missing or
// malformed thread record makes this a no-op: the reply that triggered the
// touch has already been accepted and a stale timestamp is preferable to
// failing it.
func TouchThread(id int32, ts int64) {
	v, found, err := store.Get(keys.ThreadKey(id))
	if err != nil || !found {
		logger.Warn("touch_skipped_thread_unreadable", "id", id)
		return
	}
	th, derr := decodeThread(v)
	if derr != nil {
		logger.Warn("touch_skipped_thread_malformed", "id", id)
		return
	}
	th.LastUpdated = ts
	b, err := json.Marshal(th)
	if err != nil {
		return
	}
	if err := store.Put(keys.ThreadKey(id), b); err != nil {
		logger.Error("touch_write_failed", "id", id, "error", err)
	}
}

// decodeThread decodes a stored thread record, reporting ErrMalformed for
// bytes that are present but not a valid record.
func decodeThread(v []byte) (models.Thread, error) {
	var th models.Thread
	if err := json.Unmarshal(v, &th); err != nil {
		return models.Thread{}, ErrMalformed
	}
	return th, nil
}
