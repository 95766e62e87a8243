package services

import (
	"context"

	"buildxpert/internal/dto"
	"buildxpert/internal/models"
	"buildxpert/internal/repositories"
	"buildxpert/pkg/apperrors"
)

type DashboardService struct {
	users    repositories.UserRepository
	jobs     repositories.JobRepository
	messages repositories.MessageRepository
	contacts repositories.ContactRepository
	bounces  repositories.BounceRepository
}

func NewDashboardService(
	users repositories.UserRepository,
	jobs repositories.JobRepository,
	messages repositories.MessageRepository,
	contacts repositories.ContactRepository,
	bounces repositories.BounceRepository,
) *DashboardService {
	return &DashboardService{users: users, jobs: jobs, messages: messages, contacts: contacts, bounces: bounces}
}

// Summary collects the admin landing page counters.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	clients, err := s.users.CountByRole(models.UserRoleClient)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	published, err := s.jobs.CountByStatus(models.JobStatusPublished)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	drafts, err := s.jobs.CountByStatus(models.JobStatusDraft)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	messages, err := s.messages.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	contactsNew, err := s.contacts.CountByStatus(models.ContactStatusNew)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	bounces, err := s.bounces.Count()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardResponse{
		Clients:       clients,
		JobsPublished: published,
		JobsDraft:     drafts,
		Messages:      messages,
		ContactsNew:   contactsNew,
		Bounces:       bounces,
	}, nil
}
