package keys

import (
	"strconv"
	"strings"
)

// Key layout (must stay byte-compatible with existing databases):
//
//	thread_<id>           one thread record
//	reply_<parentId>_<id> one reply record, scoped to its parent thread
//
// The two literal prefixes never collide, so a thread scan can never pick
// up a reply record or vice versa. Ordering across different parent ids is
// not meaningful; callers always scan per entity kind or per parent.

const (
	threadPrefix = "thread_"
	replyPrefix  = "reply_"
)

// ThreadKey returns the storage key for a thread id.
func ThreadKey(id int32) []byte {
	return []byte(threadPrefix + strconv.FormatInt(int64(id), 10))
}

// ThreadPrefix returns the scan prefix covering all thread records.
func ThreadPrefix() []byte {
	return []byte(threadPrefix)
}

// ReplyKey returns the storage key for a reply id scoped to its parent.
func ReplyKey(parentID, id int32) []byte {
	return []byte(replyPrefix + strconv.FormatInt(int64(parentID), 10) + "_" + strconv.FormatInt(int64(id), 10))
}

// ReplyPrefix returns the scan prefix covering all replies of one thread.
func ReplyPrefix(parentID int32) []byte {
	return []byte(replyPrefix + strconv.FormatInt(int64(parentID), 10) + "_")
}

// ParseThreadKey extracts the thread id from a thread key. The second
// return value is false when the key is not a thread key.
func ParseThreadKey(key []byte) (int32, bool) {
	s := string(key)
	if !strings.HasPrefix(s, threadPrefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(s[len(threadPrefix):], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParseReplyKey extracts the parent and reply ids from a reply key. The
// third return value is false when the key is not a reply key.
func ParseReplyKey(key []byte) (parentID, id int32, ok bool) {
	s := string(key)
	if !strings.HasPrefix(s, replyPrefix) {
		return 0, 0, false
	}
	rest := s[len(replyPrefix):]
	i := strings.IndexByte(rest, '_')
	if i <= 0 {
		return 0, 0, false
	}
	p, err := strconv.ParseInt(rest[:i], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	n, err := strconv.ParseInt(rest[i+1:], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return int32(p), int32(n), true
}
