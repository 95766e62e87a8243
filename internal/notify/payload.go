package notify

import (
	"encoding/json"
	"fmt"
)

// Channel names the message triggers publish on. They must match the
// DDL in triggers.go.
const (
	ChannelNewMessage   = "new_message"
	ChannelMessagesRead = "messages_read"
)

// Client-facing event names. The raw trigger payload is forwarded as
// the event data; only the routing fields are parsed here.
const (
	EventNewMessage   = "new_message"
	EventMessagesRead = "messages_read"
)

// newMessagePayload carries the routing fields of a new_message
// notification. The full row JSON is forwarded untouched.
type newMessagePayload struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	JobID      string `json:"job_id"`
}

// messagesReadPayload carries the routing fields of a messages_read
// notification.
type messagesReadPayload struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	JobID      string `json:"job_id"`
}

func parseNewMessage(data string) (*newMessagePayload, error) {
	var p newMessagePayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("parse new_message payload: %w", err)
	}
	if p.ID == "" || p.SenderID == "" || p.ReceiverID == "" {
		return nil, fmt.Errorf("new_message payload missing routing fields: %q", data)
	}
	return &p, nil
}

func parseMessagesRead(data string) (*messagesReadPayload, error) {
	var p messagesReadPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("parse messages_read payload: %w", err)
	}
	if p.SenderID == "" {
		return nil, fmt.Errorf("messages_read payload missing sender_id: %q", data)
	}
	return &p, nil
}
