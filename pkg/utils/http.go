package utils

import "net/http"

// HTTPError writes a plain-text error response with the given status code.
func HTTPError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

// Redirect issues a 303 See Other, the post-redirect-get pattern used by
// all form handlers.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
