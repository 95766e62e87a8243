package repositories

import (
	"errors"

	"buildxpert/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id string) (*models.Message, error)
	// ListForJob returns the full thread of a job in chronological
	// order, regardless of participant. Admin-only path.
	ListForJob(jobID string) ([]models.Message, error)
	// ListForJobParticipant returns the chronological thread of a job
	// restricted to messages the given user sent or received.
	ListForJobParticipant(jobID, userID string) ([]models.Message, error)
	// MarkRead flips every unread message addressed to receiverID in the
	// job's thread. Returns the number of rows actually updated.
	MarkRead(jobID, receiverID string) (int64, error)
	CountUnread(receiverID string) (int64, error)
	CountAll() (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").Preload("Receiver").First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) ListForJob(jobID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) ListForJobParticipant(jobID, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("job_id = ? AND (sender_id = ? OR receiver_id = ?)", jobID, userID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) MarkRead(jobID, receiverID string) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("job_id = ? AND receiver_id = ? AND is_read = ?", jobID, receiverID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) CountUnread(receiverID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Count(&count).Error
	return count, err
}
