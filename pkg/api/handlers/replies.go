package handlers

import (
	"net/http"
	"strconv"

	"threadb/pkg/board"
	"threadb/pkg/utils"
)

// CreateReply handles POST /reply: a form with parent_id and message. On
// success the client is redirected back to the parent thread. The parent is
// not checked for existence; replies to a missing thread are stored and its
// timestamp touch is skipped.
func CreateReply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.HTTPError(w, http.StatusBadRequest, "Invalid form submission")
		return
	}
	parentID, err := strconv.ParseInt(r.PostFormValue("parent_id"), 10, 32)
	if err != nil {
		utils.HTTPError(w, http.StatusBadRequest, "Invalid parent thread id")
		return
	}

	if _, err := board.CreateReply(int32(parentID), r.PostFormValue("message")); err != nil {
		if board.IsValidation(err) {
			utils.HTTPError(w, http.StatusBadRequest, "Message cannot be empty")
			return
		}
		utils.HTTPError(w, http.StatusInternalServerError, "Failed to post reply")
		return
	}
	utils.Redirect(w, r, "/thread/"+strconv.FormatInt(parentID, 10))
}
