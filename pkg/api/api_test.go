package api_test

import (
	"bytes"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"threadb/pkg/api"
	"threadb/pkg/store"
	"threadb/pkg/uploads"
)

func setupHandler(t *testing.T) http.Handler {
	t.Helper()
	require.NoError(t, store.Open(t.TempDir()))
	t.Cleanup(func() { _ = store.Close() })

	tmpl := template.New("")
	template.Must(tmpl.New("homepage.html").Parse(
		`{{range .Threads}}[{{.ID}}:{{.Title}}]{{end}} page {{.CurrentPage}}/{{.TotalPages}}`))
	template.Must(tmpl.New("thread.html").Parse(
		`{{.Thread.Title}}{{range .Replies}}({{.ID}}:{{.Message}}){{end}}`))

	return api.Handler(api.Options{
		Templates: tmpl,
		Uploads:   uploads.NewStore(t.TempDir(), 1<<20),
		PageSize:  10,
	})
}

func postThread(t *testing.T, h http.Handler, title, message, filename string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", title))
	require.NoError(t, mw.WriteField("message", message))
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/thread", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postReply(t *testing.T, h http.Handler, parentID, message string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"parent_id": {parentID}, "message": {message}}
	req := httptest.NewRequest(http.MethodPost, "/reply", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getBody(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	b, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(b)
}

func TestCreateThreadRedirectsHome(t *testing.T) {
	h := setupHandler(t)
	rec := postThread(t, h, "hello", "first post", "", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	code, body := getBody(t, h, "/")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "[1:hello]")
	require.Contains(t, body, "page 1/1")
}

func TestCreateThreadRejectsEmptyFields(t *testing.T) {
	h := setupHandler(t)
	rec := postThread(t, h, "   ", "msg", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postThread(t, h, "title", " \t", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateThreadRejectsNonJPEG(t *testing.T) {
	h := setupHandler(t)
	rec := postThread(t, h, "t", "m", "notes.txt", []byte("hi"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateThreadWithImage(t *testing.T) {
	h := setupHandler(t)
	rec := postThread(t, h, "pic", "look", "cat.jpg", []byte("jpegbytes"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestViewThreadWithReplies(t *testing.T) {
	h := setupHandler(t)
	rec := postThread(t, h, "topic", "op", "", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postReply(t, h, "1", "reply one")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/thread/1", rec.Header().Get("Location"))

	code, body := getBody(t, h, "/thread/1")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "topic")
	require.Contains(t, body, "(1:reply one)")
}

func TestViewMissingThreadIs404(t *testing.T) {
	h := setupHandler(t)
	code, _ := getBody(t, h, "/thread/42")
	require.Equal(t, http.StatusNotFound, code)

	code, _ = getBody(t, h, "/thread/notanumber")
	require.Equal(t, http.StatusNotFound, code)
}

func TestCreateReplyRejectsEmptyMessage(t *testing.T) {
	h := setupHandler(t)
	rec := postReply(t, h, "1", "  ")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReplyRejectsBadParentID(t *testing.T) {
	h := setupHandler(t)
	rec := postReply(t, h, "abc", "msg")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostLimiter(t *testing.T) {
	require.NoError(t, store.Open(t.TempDir()))
	t.Cleanup(func() { _ = store.Close() })

	tmpl := template.New("")
	template.Must(tmpl.New("homepage.html").Parse(`ok`))
	template.Must(tmpl.New("thread.html").Parse(`ok`))
	h := api.Handler(api.Options{
		Templates: tmpl,
		Uploads:   uploads.NewStore(t.TempDir(), 1<<20),
		PageSize:  10,
		RPS:       0.001,
		Burst:     1,
	})

	rec := postReply(t, h, "1", "first")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = postReply(t, h, "1", "second")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := setupHandler(t)
	code, body := getBody(t, h, "/healthz")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `"status":"ok"`)
}
