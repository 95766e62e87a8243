package dto

import (
	"time"

	"buildxpert/internal/models"
)

type CreateMessageRequest struct {
	Content    string `json:"content" validate:"required,min=1,max=5000"`
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	JobID      string `json:"job_id" validate:"required,uuid"`
}

type MessageListQuery struct {
	JobID  string `form:"job_id" validate:"required,uuid"`
	UserID string `form:"user_id" validate:"omitempty,uuid"`
}

type MarkReadRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
}

type ChatMessageResponse struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	JobID      string    `json:"job_id"`
	IsRead     bool      `json:"is_read"`
	SenderName string    `json:"sender_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessageListResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

func ToChatMessageResponse(m *models.Message) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:         m.ID,
		Content:    m.Content,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		JobID:      m.JobID,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.Name
	}
	return resp
}
