package services

import (
	"context"
	"errors"

	"buildxpert/internal/dto"
	"buildxpert/internal/email"
	"buildxpert/internal/logger"
	"buildxpert/internal/models"
	"buildxpert/internal/repositories"
	"buildxpert/pkg/apperrors"
)

type MessageService struct {
	messages repositories.MessageRepository
	jobs     repositories.JobRepository
	users    repositories.UserRepository
	sender   *email.Sender
}

func NewMessageService(
	messages repositories.MessageRepository,
	jobs repositories.JobRepository,
	users repositories.UserRepository,
	sender *email.Sender,
) *MessageService {
	return &MessageService{messages: messages, jobs: jobs, users: users, sender: sender}
}

// Create stores a message after checking the pairing rule: the sender
// and receiver must be the job's poster and an administrator, in either
// order. The INSERT fires the new_message trigger, so delivery to the
// WebSocket rooms happens without any extra call here.
func (s *MessageService) Create(ctx context.Context, senderID string, req dto.CreateMessageRequest) (*dto.ChatMessageResponse, error) {
	if senderID == req.ReceiverID {
		return nil, apperrors.NewBadRequestError("Cannot send a message to yourself")
	}

	job, err := s.jobs.FindByID(req.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	sender, err := s.users.FindByID(senderID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	receiver, err := s.users.FindByID(req.ReceiverID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	if !validPairing(job, sender, receiver) {
		return nil, apperrors.ErrInvalidPairing
	}

	message := &models.Message{
		Content:    req.Content,
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		JobID:      req.JobID,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	message.Sender = sender

	s.notifyReceiver(ctx, receiver, sender, job, message)

	resp := dto.ToChatMessageResponse(message)
	return &resp, nil
}

// validPairing holds when one side is the job's poster and the other is
// an administrator.
func validPairing(job *models.Job, a, b *models.User) bool {
	if a.ID == job.PosterID && b.IsAdmin() {
		return true
	}
	if b.ID == job.PosterID && a.IsAdmin() {
		return true
	}
	return false
}

// List returns the job's thread restricted to one participant's view.
func (s *MessageService) List(ctx context.Context, jobID, userID string) (*dto.MessageListResponse, error) {
	if _, err := s.jobs.FindByID(jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	messages, err := s.messages.ListForJobParticipant(jobID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toMessageList(messages), nil
}

// ListAll returns the full thread of a job. Admin-only path.
func (s *MessageService) ListAll(ctx context.Context, jobID string) (*dto.MessageListResponse, error) {
	if _, err := s.jobs.FindByID(jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	messages, err := s.messages.ListForJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toMessageList(messages), nil
}

// MarkRead flips the caller's unread messages in a job's thread. Each
// updated row fires the messages_read trigger, which tells the sender's
// open sessions their messages were seen.
func (s *MessageService) MarkRead(ctx context.Context, jobID, receiverID string) (*dto.MarkReadResponse, error) {
	updated, err := s.messages.MarkRead(jobID, receiverID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.MarkReadResponse{Updated: updated}, nil
}

func (s *MessageService) notifyReceiver(ctx context.Context, receiver, sender *models.User, job *models.Job, message *models.Message) {
	if s.sender == nil {
		return
	}

	preview := message.Content
	if len(preview) > 140 {
		preview = preview[:140] + "…"
	}

	if err := s.sender.SendTemplate(ctx, []string{receiver.Email}, "new_message", map[string]string{
		"Name":       receiver.Name,
		"SenderName": sender.Name,
		"JobTitle":   job.Title,
		"Preview":    preview,
	}); err != nil {
		logger.CtxWarn(ctx, "message notification email failed",
			"error", err, "receiver_id", receiver.ID)
	}
}

func toMessageList(messages []models.Message) *dto.MessageListResponse {
	resp := &dto.MessageListResponse{Messages: make([]dto.ChatMessageResponse, 0, len(messages))}
	for i := range messages {
		resp.Messages = append(resp.Messages, dto.ToChatMessageResponse(&messages[i]))
	}
	return resp
}
