package integration

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildxpert/internal/dto"
	"buildxpert/internal/notify"
	"buildxpert/test/helpers"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	UserID string
	Event  string
}

func (e *recordingEmitter) Emit(userID, event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, recordedEvent{UserID: userID, Event: event})
}

func (e *recordingEmitter) snapshot() []recordedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]recordedEvent, len(e.events))
	copy(out, e.events)
	return out
}

func (e *recordingEmitter) countFor(userID, event string) int {
	n := 0
	for _, ev := range e.snapshot() {
		if ev.UserID == userID && ev.Event == event {
			n++
		}
	}
	return n
}

// TestRelay_DatabaseWriteReachesRooms drives the full pipeline: an
// INSERT through the HTTP API fires the trigger, the dedicated LISTEN
// connection picks the notification up, and both participants' rooms
// receive the event.
func TestRelay_DatabaseWriteReachesRooms(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	emitter := &recordingEmitter{}
	listener, err := notify.NewListener(os.Getenv("DATABASE_URL"), emitter)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	// Give the LISTEN registration a moment.
	time.Sleep(200 * time.Millisecond)

	poster, posterToken := server.CreateUser(t, "Poster", "poster@example.com", "CLIENT")
	admin, adminToken := server.CreateUser(t, "Admin", "admin@example.com", "ADMIN")

	job := publishJob(t, server, posterToken)

	w := server.SendRequest(t, http.MethodPost, "/api/v1/messages", dto.CreateMessageRequest{
		Content:    "trigger test",
		ReceiverID: admin.ID,
		JobID:      job.ID,
	}, posterToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Eventually(t, func() bool {
		return emitter.countFor(poster.ID, "new_message") == 1 &&
			emitter.countFor(admin.ID, "new_message") == 1
	}, 5*time.Second, 50*time.Millisecond, "both rooms should get the insert event")

	// Marking read notifies the sender only, and only for real flips.
	w = server.SendRequest(t, http.MethodPut, "/api/v1/messages/read", dto.MarkReadRequest{
		JobID: job.ID,
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		return emitter.countFor(poster.ID, "messages_read") == 1
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, 0, emitter.countFor(admin.ID, "messages_read"))

	// Re-marking is a no-op update: the trigger must stay silent.
	w = server.SendRequest(t, http.MethodPut, "/api/v1/messages/read", dto.MarkReadRequest{
		JobID: job.ID,
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 1, emitter.countFor(poster.ID, "messages_read"))
}
