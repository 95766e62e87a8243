package models

// Message is one directed communication tied to a job. Sender and
// receiver must be the job's poster and an administrator, in either
// order; the service layer enforces the pairing on every write path.
type Message struct {
	BaseModel
	Content    string `gorm:"type:text;not null" json:"content"`
	SenderID   string `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID string `gorm:"type:uuid;not null;index" json:"receiver_id"`
	JobID      string `gorm:"type:uuid;not null;index" json:"job_id"`
	IsRead     bool   `gorm:"not null;default:false" json:"is_read"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Job      *Job  `gorm:"foreignKey:JobID" json:"-"`
}
