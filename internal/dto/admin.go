package dto

import (
	"time"

	"gorm.io/datatypes"

	"buildxpert/internal/models"
)

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied"`
}

type ContactResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone,omitempty"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	Status    models.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

type ContactListResponse struct {
	Contacts   []ContactResponse `json:"contacts"`
	Pagination Pagination        `json:"pagination"`
}

func ToContactResponse(contact *models.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Subject:   contact.Subject,
		Message:   contact.Message,
		Status:    contact.Status,
		CreatedAt: contact.CreatedAt,
	}
}

// BounceWebhookRequest is the payload the email provider posts when a
// delivery permanently fails.
type BounceWebhookRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description"`
}

type BounceResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type BounceListResponse struct {
	Bounces    []BounceResponse `json:"bounces"`
	Pagination Pagination       `json:"pagination"`
}

type CreateTemplateRequest struct {
	Name      string         `json:"name" validate:"required,min=2,max=100"`
	Subject   string         `json:"subject" validate:"required,max=300"`
	Body      string         `json:"body" validate:"required"`
	Variables datatypes.JSON `json:"variables"`
}

type UpdateTemplateRequest struct {
	Subject   *string         `json:"subject" validate:"omitempty,max=300"`
	Body      *string         `json:"body"`
	Variables *datatypes.JSON `json:"variables"`
}

type TemplateResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	Variables datatypes.JSON `json:"variables,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func ToTemplateResponse(t *models.EmailTemplate) TemplateResponse {
	return TemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Subject:   t.Subject,
		Body:      t.Body,
		Variables: t.Variables,
		UpdatedAt: t.UpdatedAt,
	}
}

// DashboardResponse is the admin landing page counters.
type DashboardResponse struct {
	Clients       int64 `json:"clients"`
	JobsPublished int64 `json:"jobs_published"`
	JobsDraft     int64 `json:"jobs_draft"`
	Messages      int64 `json:"messages"`
	ContactsNew   int64 `json:"contacts_new"`
	Bounces       int64 `json:"bounces"`
}
