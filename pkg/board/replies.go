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

// CreateReply validates and persists a new reply under parentID, then
// touches the parent thread. The touch is best-effort: the reply stands
// even when the parent record is missing or malformed. There is no
// referential check that the parent exists; the association is only the
// storage key.
func CreateReply(parentID int32, message string) (models.Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Reply{}, &ValidationError{Field: "message", Msg: "must not be empty"}
	}

	id, err := NextReplyID(parentID)
	if err != nil {
		return models.Reply{}, err
	}
	rp := models.Reply{ID: id, Message: message}

	b, err := json.Marshal(rp)
	if err != nil {
		return models.Reply{}, &StorageError{Op: "marshal reply", Err: err}
	}
	if err := store.Put(keys.ReplyKey(parentID, id), b); err != nil {
		return models.Reply{}, &StorageError{Op: "save reply", Err: err}
	}
	logger.Info("reply_created", "thread", parentID, "id", id)
	repliesCreated.Inc()

	TouchThread(parentID, time.Now().Unix())
	return rp, nil
}

// ListReplies returns every decodable reply under parentID in scan order,
// skipping malformed records.
func ListReplies(parentID int32) ([]models.Reply, error) {
	entries, err := store.ScanPrefix(keys.ReplyPrefix(parentID))
	if err != nil {
		return nil, &StorageError{Op: "scan replies", Err: err}
	}
	out := make([]models.Reply, 0, len(entries))
	for _, e := range entries {
		rp, derr := decodeReply(e.Value)
		if derr != nil {
			logger.Warn("reply_record_skipped", "key", string(e.Key))
			continue
		}
		out = append(out, rp)
	}
	return out, nil
}

// decodeReply decodes a stored reply record, reporting ErrMalformed for
// bytes that are present but not a valid record.
func decodeReply(v []byte) (models.Reply, error) {
	var rp models.Reply
	if err := json.Unmarshal(v, &rp); err != nil {
		return models.Reply{}, ErrMalformed
	}
	return rp, nil
}
