package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildxpert/internal/dto"
	"buildxpert/internal/models"
	"buildxpert/test/helpers"
)

// publishJob creates and publishes a job for poster.
func publishJob(t *testing.T, server *helpers.TestServer, posterToken string) dto.JobResponse {
	t.Helper()

	job := createDraft(t, server, posterToken)

	w := server.SendRequest(t, http.MethodPatch, "/api/v1/jobs/"+job.ID, dto.UpdateJobRequest{
		Description: strPtr("Repaint the hallway."),
	}, posterToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = server.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/publish", nil, posterToken)
	require.Equal(t, http.StatusOK, w.Code)

	var published dto.JobResponse
	helpers.DecodeJSON(t, w, &published)
	return published
}

func TestMessage_PosterToAdmin(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	_, posterToken := server.CreateUser(t, "Poster", "poster@example.com", "CLIENT")
	admin, _ := server.CreateUser(t, "Admin", "admin@example.com", "ADMIN")

	job := publishJob(t, server, posterToken)

	w := server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
		Content:    "When can you start?",
		ReceiverID: admin.ID,
		JobID:      job.ID,
	}, posterToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var msg dto.ChatMessageResponse
	helpers.DecodeJSON(t, w, &msg)
	assert.Equal(t, admin.ID, msg.ReceiverID)
	assert.False(t, msg.IsRead)
}

func TestMessage_PairingEnforced(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	_, posterToken := server.CreateUser(t, "Poster", "poster@example.com", "CLIENT")
	other, otherToken := server.CreateUser(t, "Other", "other@example.com", "CLIENT")
	admin, adminToken := server.CreateUser(t, "Admin", "admin@example.com", "ADMIN")

	job := publishJob(t, server, posterToken)

	// Poster to another client: rejected.
	w := server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
		Content:    "hi",
		ReceiverID: other.ID,
		JobID:      job.ID,
	}, posterToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unrelated client to admin: rejected, they don't own the job.
	w = server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
		Content:    "hi",
		ReceiverID: admin.ID,
		JobID:      job.ID,
	}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin to unrelated client: rejected.
	w = server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
		Content:    "hi",
		ReceiverID: other.ID,
		JobID:      job.ID,
	}, adminToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMessageList_OrderAndAccess(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	poster, posterToken := server.CreateUser(t, "Poster", "poster@example.com", "CLIENT")
	admin, adminToken := server.CreateUser(t, "Admin", "admin@example.com", "ADMIN")
	other, otherToken := server.CreateUser(t, "Other", "other@example.com", "CLIENT")

	job := publishJob(t, server, posterToken)

	for _, content := range []string{"first", "second"} {
		w := server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
			Content:    content,
			ReceiverID: admin.ID,
			JobID:      job.ID,
		}, posterToken)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
		Content:    "third",
		ReceiverID: poster.ID,
		JobID:      job.ID,
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)

	// Participant view, chronological order, cacheable.
	w = server.SendRequest(t, http.MethodGet,
		"/api/v1/messages?job_id="+job.ID+"&user_id="+poster.ID, nil, posterToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "public, max-age=20", w.Header().Get("Cache-Control"))

	var list dto.MessageListResponse
	helpers.DecodeJSON(t, w, &list)
	require.Len(t, list.Messages, 3)
	assert.Equal(t, "first", list.Messages[0].Content)
	assert.Equal(t, "second", list.Messages[1].Content)
	assert.Equal(t, "third", list.Messages[2].Content)

	// A stranger cannot read someone else's view.
	w = server.SendRequest(t, http.MethodGet,
		"/api/v1/messages?job_id="+job.ID+"&user_id="+poster.ID, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A stranger's own view of the thread is just empty, not an error.
	w = server.SendRequest(t, http.MethodGet,
		"/api/v1/messages?job_id="+job.ID+"&user_id="+other.ID, nil, otherToken)
	require.Equal(t, http.StatusOK, w.Code)
	helpers.DecodeJSON(t, w, &list)
	assert.Empty(t, list.Messages)

	// Whole-thread view without user_id is admin-only.
	w = server.SendRequest(t, http.MethodGet,
		"/api/v1/messages?job_id="+job.ID, nil, posterToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = server.SendRequest(t, http.MethodGet,
		"/api/v1/messages?job_id="+job.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	helpers.DecodeJSON(t, w, &list)
	assert.Len(t, list.Messages, 3)
}

func TestMessage_MarkRead(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	_, posterToken := server.CreateUser(t, "Poster", "poster@example.com", "CLIENT")
	admin, adminToken := server.CreateUser(t, "Admin", "admin@example.com", "ADMIN")

	job := publishJob(t, server, posterToken)

	for _, content := range []string{"one", "two"} {
		w := server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
			Content:    content,
			ReceiverID: admin.ID,
			JobID:      job.ID,
		}, posterToken)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := server.SendRequest(t, http.MethodPut, "/api/v1/messages/read", dto.MarkReadRequest{
		JobID: job.ID,
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var marked dto.MarkReadResponse
	helpers.DecodeJSON(t, w, &marked)
	assert.Equal(t, int64(2), marked.Updated)

	// Idempotent: a second call updates nothing.
	w = server.SendRequest(t, http.MethodPut, "/api/v1/messages/read", dto.MarkReadRequest{
		JobID: job.ID,
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	helpers.DecodeJSON(t, w, &marked)
	assert.Equal(t, int64(0), marked.Updated)

	var unread int64
	require.NoError(t, server.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", admin.ID, false).
		Count(&unread).Error)
	assert.Equal(t, int64(0), unread)
}

func TestMessage_SelfSendRejected(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	poster, posterToken := server.CreateUser(t, "Poster", "poster@example.com", "CLIENT")
	job := publishJob(t, server, posterToken)

	w := server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
		Content:    "note to self",
		ReceiverID: poster.ID,
		JobID:      job.ID,
	}, posterToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
