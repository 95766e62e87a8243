package integration

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildxpert/internal/dto"
	"buildxpert/test/helpers"
)

func uploadPNG(t *testing.T, server *helpers.TestServer, token, fileName string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + fileName + `"`}
	header["Content-Type"] = []string{"image/png"}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake pixels"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	return w
}

func TestUpload_StoreAttachServe(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	_, token := server.CreateUser(t, "Poster", "poster@example.com", "CLIENT")

	w := uploadPNG(t, server, token, "wall.png")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var uploaded dto.UploadResponse
	helpers.DecodeJSON(t, w, &uploaded)
	assert.Equal(t, "wall.png", uploaded.FileName)
	assert.Equal(t, "image/png", uploaded.ContentType)

	// Attach to an owned draft.
	job := createDraft(t, server, token)
	w = server.SendRequest(t, http.MethodPost,
		"/api/v1/jobs/"+job.ID+"/images/"+uploaded.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The image shows up on the job.
	w = server.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+job.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched dto.JobResponse
	helpers.DecodeJSON(t, w, &fetched)
	require.Len(t, fetched.Images, 1)
	assert.Equal(t, uploaded.ID, fetched.Images[0].ID)

	// Serving streams the stored bytes back.
	w = server.SendRequest(t, http.MethodGet, "/api/v1/files/"+uploaded.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "fake pixels")
}

func TestUpload_RequiresAuth(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	w := uploadPNG(t, server, "", "wall.png")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpload_CannotAttachToForeignJob(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	_, posterToken := server.CreateUser(t, "Poster", "poster@example.com", "CLIENT")
	_, otherToken := server.CreateUser(t, "Other", "other@example.com", "CLIENT")

	job := createDraft(t, server, posterToken)

	w := uploadPNG(t, server, otherToken, "sneaky.png")
	require.Equal(t, http.StatusCreated, w.Code)

	var uploaded dto.UploadResponse
	helpers.DecodeJSON(t, w, &uploaded)

	w = server.SendRequest(t, http.MethodPost,
		"/api/v1/jobs/"+job.ID+"/images/"+uploaded.ID, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
