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

type ContactService struct {
	contacts   repositories.ContactRepository
	sender     *email.Sender
	adminEmail string
}

func NewContactService(contacts repositories.ContactRepository, sender *email.Sender, adminEmail string) *ContactService {
	return &ContactService{contacts: contacts, sender: sender, adminEmail: adminEmail}
}

// Create stores a public contact-form submission and notifies the
// back office by mail.
func (s *ContactService) Create(ctx context.Context, req dto.CreateContactRequest) (*dto.ContactResponse, error) {
	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactStatusNew,
	}
	if err := s.contacts.Create(contact); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.sender != nil && s.adminEmail != "" {
		if err := s.sender.SendTemplate(ctx, []string{s.adminEmail}, "contact_received", map[string]string{
			"Name":    contact.Name,
			"Email":   contact.Email,
			"Message": contact.Message,
		}); err != nil {
			logger.CtxWarn(ctx, "contact notification email failed", "error", err)
		}
	}

	resp := dto.ToContactResponse(contact)
	return &resp, nil
}

func (s *ContactService) List(ctx context.Context, status string, page, pageSize int) (*dto.ContactListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	contacts, total, err := s.contacts.List(models.ContactStatus(status), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ContactListResponse{
		Contacts: make([]dto.ContactResponse, 0, len(contacts)),
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}
	for i := range contacts {
		resp.Contacts = append(resp.Contacts, dto.ToContactResponse(&contacts[i]))
	}
	return resp, nil
}

func (s *ContactService) UpdateStatus(ctx context.Context, id string, req dto.UpdateContactStatusRequest) (*dto.ContactResponse, error) {
	contact, err := s.contacts.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrContactNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	contact.Status = models.ContactStatus(req.Status)
	if err := s.contacts.Update(contact); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToContactResponse(contact)
	return &resp, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if _, err := s.contacts.FindByID(id); err != nil {
		if errors.Is(err, repositories.ErrContactNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.contacts.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
