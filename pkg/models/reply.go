package models

// Reply is one reply inside a thread. Its id is only unique within the
// parent thread; the parent association lives in the storage key, not in
// the record itself.
type Reply struct {
	ID      int32  `json:"id"`
	Message string `json:"message"`
}
