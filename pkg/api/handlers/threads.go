package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"threadb/pkg/board"
	"threadb/pkg/models"
	"threadb/pkg/uploads"
	"threadb/pkg/utils"
)

// homepageData feeds templates/homepage.html.
type homepageData struct {
	Threads     []models.Thread
	CurrentPage int
	TotalPages  int
}

// threadData feeds templates/thread.html.
type threadData struct {
	Thread  models.Thread
	Replies []models.Reply
}

// Homepage handles GET / and renders one page of the thread listing,
// newest activity first. The page query parameter defaults to 1 and is
// clamped by the pagination engine.
func Homepage(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}

	threads, err := board.ListThreads()
	if err != nil {
		utils.HTTPError(w, http.StatusInternalServerError, "Error loading threads")
		return
	}
	slice, current, total := board.Paginate(threads, page, pageSize)
	render(w, "homepage.html", homepageData{Threads: slice, CurrentPage: current, TotalPages: total})
}

// ViewThread handles GET /thread/{id} and renders one thread with all of
// its replies. Missing and unreadable threads both produce 404.
func ViewThread(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.HTTPError(w, http.StatusNotFound, "Thread not found")
		return
	}

	th, found, err := board.GetThread(int32(id))
	if err != nil {
		utils.HTTPError(w, http.StatusInternalServerError, "Error loading thread")
		return
	}
	if !found {
		utils.HTTPError(w, http.StatusNotFound, "Thread not found")
		return
	}
	replies, err := board.ListReplies(int32(id))
	if err != nil {
		utils.HTTPError(w, http.StatusInternalServerError, "Error loading replies")
		return
	}
	render(w, "thread.html", threadData{Thread: th, Replies: replies})
}

// CreateThread handles POST /thread: a multipart form with title, message
// and an optional JPEG image. The image is fully written to disk before the
// thread record is created, so a stored image_url never points at a partial
// file. On success the client is redirected to the homepage.
func CreateThread(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.HTTPError(w, http.StatusBadRequest, "Invalid form submission")
		return
	}
	title := r.FormValue("title")
	message := r.FormValue("message")

	imageURL := ""
	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// no image attached
	case err != nil:
		utils.HTTPError(w, http.StatusBadRequest, "Invalid form submission")
		return
	default:
		defer file.Close()
		// a file input submitted empty arrives with an empty filename
		if header.Filename != "" {
			url, serr := imgStore.Save(header.Filename, file)
			if serr != nil {
				status := http.StatusInternalServerError
				msg := "Failed to store image"
				if errors.Is(serr, uploads.ErrUnsupportedType) {
					status, msg = http.StatusBadRequest, "Only JPEG images are allowed"
				} else if errors.Is(serr, uploads.ErrTooLarge) {
					status, msg = http.StatusBadRequest, "Image is too large"
				}
				utils.HTTPError(w, status, msg)
				return
			}
			imageURL = url
		}
	}

	if _, err := board.CreateThread(title, message, imageURL); err != nil {
		if board.IsValidation(err) {
			utils.HTTPError(w, http.StatusBadRequest, "Title and Message cannot be empty")
			return
		}
		utils.HTTPError(w, http.StatusInternalServerError, "Failed to create thread")
		return
	}
	utils.Redirect(w, r, "/")
}
