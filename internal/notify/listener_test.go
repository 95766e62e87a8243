package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordedEmit struct {
	userID string
	event  string
}

type fakeEmitter struct {
	emits []recordedEmit
}

func (f *fakeEmitter) Emit(userID, event string, payload any) {
	f.emits = append(f.emits, recordedEmit{userID: userID, event: event})
}

func TestDispatch_NewMessageFansOutToBothRooms(t *testing.T) {
	emitter := &fakeEmitter{}
	l := &Listener{emitter: emitter}

	l.dispatch(ChannelNewMessage, `{"id":"m1","content":"Hello","sender_id":"poster","receiver_id":"admin","job_id":"j1","is_read":false}`)

	assert.Len(t, emitter.emits, 2)
	assert.Equal(t, recordedEmit{"poster", EventNewMessage}, emitter.emits[0])
	assert.Equal(t, recordedEmit{"admin", EventNewMessage}, emitter.emits[1])
}

func TestDispatch_NewMessageSelfSendEmitsOnce(t *testing.T) {
	emitter := &fakeEmitter{}
	l := &Listener{emitter: emitter}

	l.dispatch(ChannelNewMessage, `{"id":"m1","sender_id":"u1","receiver_id":"u1","job_id":"j1"}`)

	assert.Len(t, emitter.emits, 1)
}

func TestDispatch_MessagesReadGoesToSenderOnly(t *testing.T) {
	emitter := &fakeEmitter{}
	l := &Listener{emitter: emitter}

	l.dispatch(ChannelMessagesRead, `{"id":"m1","sender_id":"poster","receiver_id":"admin","job_id":"j1"}`)

	assert.Len(t, emitter.emits, 1)
	assert.Equal(t, recordedEmit{"poster", EventMessagesRead}, emitter.emits[0])
}

func TestDispatch_MalformedPayloadIsDropped(t *testing.T) {
	emitter := &fakeEmitter{}
	l := &Listener{emitter: emitter}

	l.dispatch(ChannelNewMessage, `not json`)
	l.dispatch(ChannelNewMessage, `{"id":"m1"}`)
	l.dispatch(ChannelMessagesRead, `{}`)
	l.dispatch("unknown_channel", `{}`)

	assert.Empty(t, emitter.emits)
}

func TestParseNewMessage(t *testing.T) {
	p, err := parseNewMessage(`{"id":"m1","content":"hi","sender_id":"s","receiver_id":"r","job_id":"j","is_read":false,"created_at":"2026-08-27T10:00:00+00:00"}`)
	assert.NoError(t, err)
	assert.Equal(t, "m1", p.ID)
	assert.Equal(t, "s", p.SenderID)
	assert.Equal(t, "r", p.ReceiverID)
	assert.Equal(t, "j", p.JobID)
}
