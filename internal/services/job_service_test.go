package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildxpert/internal/email"
	"buildxpert/internal/models"
	"buildxpert/internal/repositories"
)

type stubJobRepo struct {
	repositories.JobRepository
	job *models.Job
}

func (s *stubJobRepo) FindByID(id string) (*models.Job, error) { return s.job, nil }
func (s *stubJobRepo) Update(job *models.Job) error            { return nil }

type stubUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (s *stubUserRepo) FindByID(id string) (*models.User, error) { return s.user, nil }

type capturingProvider struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (p *capturingProvider) Send(_ context.Context, msg email.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, msg)
	return nil
}

func (p *capturingProvider) Name() string { return "capturing" }

type allowAll struct{}

func (allowAll) ExistsForEmail(string) (bool, error) { return false, nil }

func completeDraft(posterID string) *models.Job {
	job := &models.Job{
		PosterID:     posterID,
		Title:        "Paint the hallway",
		Description:  "Two coats, white",
		City:         "Dublin",
		PropertyKind: "apartment",
		Status:       models.JobStatusDraft,
	}
	job.ID = "job-1"
	return job
}

func TestPublish_SendsJobPublishedEmail(t *testing.T) {
	poster := &models.User{Name: "Poster", Email: "poster@example.com"}
	poster.ID = "poster-1"

	provider := &capturingProvider{}
	sender := email.NewSender(provider, allowAll{}, nil)
	svc := NewJobService(&stubJobRepo{job: completeDraft(poster.ID)}, nil, &stubUserRepo{user: poster}, sender)

	resp, err := svc.Publish(context.Background(), "job-1", poster.ID)
	require.NoError(t, err)
	assert.Equal(t, "published", string(resp.Status))

	require.Len(t, provider.sent, 1)
	msg := provider.sent[0]
	assert.Equal(t, []string{"poster@example.com"}, msg.To)
	assert.Equal(t, "Your job is live", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Paint the hallway")
}

func TestPublish_MailFailureDoesNotBlock(t *testing.T) {
	poster := &models.User{Name: "Poster", Email: "poster@example.com"}
	poster.ID = "poster-1"

	provider := &capturingProvider{err: errors.New("smtp down")}
	sender := email.NewSender(provider, allowAll{}, nil)
	svc := NewJobService(&stubJobRepo{job: completeDraft(poster.ID)}, nil, &stubUserRepo{user: poster}, sender)

	resp, err := svc.Publish(context.Background(), "job-1", poster.ID)
	require.NoError(t, err)
	assert.Equal(t, "published", string(resp.Status))
	assert.Empty(t, provider.sent)
}
