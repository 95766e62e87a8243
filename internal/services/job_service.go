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

type JobService struct {
	jobs    repositories.JobRepository
	uploads repositories.UploadRepository
	users   repositories.UserRepository
	sender  *email.Sender
}

func NewJobService(jobs repositories.JobRepository, uploads repositories.UploadRepository, users repositories.UserRepository, sender *email.Sender) *JobService {
	return &JobService{jobs: jobs, uploads: uploads, users: users, sender: sender}
}

// CreateDraft starts the posting wizard. Everything beyond the poster
// is optional at this point.
func (s *JobService) CreateDraft(ctx context.Context, posterID string, req dto.CreateJobRequest) (*dto.JobResponse, error) {
	job := &models.Job{
		PosterID:     posterID,
		Title:        req.Title,
		PropertyKind: req.PropertyKind,
		City:         req.City,
		Status:       models.JobStatusDraft,
	}
	if err := s.jobs.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// Update applies one wizard step to a draft. Only the poster may edit,
// and only while the job is still a draft.
func (s *JobService) Update(ctx context.Context, jobID, userID string, req dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.ownedJob(jobID, userID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusDraft {
		return nil, apperrors.ErrInvalidStatus("job", "Only draft jobs can be edited")
	}

	applyJobUpdate(job, req)

	if err := s.jobs.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// Publish validates draft completeness and flips it to published.
func (s *JobService) Publish(ctx context.Context, jobID, userID string) (*dto.JobResponse, error) {
	job, err := s.ownedJob(jobID, userID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusDraft {
		return nil, apperrors.ErrJobNotPublishable
	}
	if job.Title == "" || job.Description == "" || job.City == "" || job.PropertyKind == "" {
		return nil, apperrors.ErrJobNotPublishable
	}

	job.Status = models.JobStatusPublished
	if err := s.jobs.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyPublished(ctx, job)

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

func (s *JobService) notifyPublished(ctx context.Context, job *models.Job) {
	if s.sender == nil {
		return
	}

	poster, err := s.users.FindByID(job.PosterID)
	if err != nil {
		logger.CtxWarn(ctx, "publish notification skipped, poster lookup failed",
			"error", err, "job_id", job.ID)
		return
	}

	if err := s.sender.SendTemplate(ctx, []string{poster.Email}, "job_published", map[string]string{
		"Name":     poster.Name,
		"JobTitle": job.Title,
	}); err != nil {
		// Mail failure never blocks publishing.
		logger.CtxWarn(ctx, "publish notification email failed",
			"error", err, "job_id", job.ID)
	}
}

// Close ends a published job. The poster or an admin may close.
func (s *JobService) Close(ctx context.Context, jobID, userID string, isAdmin bool) (*dto.JobResponse, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.PosterID != userID && !isAdmin {
		return nil, apperrors.ErrJobAccessDenied
	}
	if job.Status != models.JobStatusPublished {
		return nil, apperrors.ErrInvalidStatus("job", "Only published jobs can be closed")
	}

	job.Status = models.JobStatusClosed
	if err := s.jobs.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// Get returns one job. Published jobs are public; anything else is
// visible only to the poster and admins.
func (s *JobService) Get(ctx context.Context, jobID, callerID string, isAdmin bool) (*dto.JobResponse, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.Status != models.JobStatusPublished && job.PosterID != callerID && !isAdmin {
		return nil, apperrors.ErrJobNotFound
	}
	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// List serves the public board. Non-admin callers only ever see
// published jobs regardless of the requested filter.
func (s *JobService) List(ctx context.Context, query dto.JobListQuery, isAdmin bool) (*dto.JobListResponse, error) {
	status := models.JobStatus(query.Status)
	if !isAdmin {
		status = models.JobStatusPublished
	}

	filter := repositories.JobFilter{
		Status:   status,
		City:     query.City,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	jobs, total, err := s.jobs.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.JobListResponse{
		Jobs: make([]dto.JobResponse, 0, len(jobs)),
		Pagination: dto.Pagination{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Total:    total,
		},
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, dto.ToJobResponse(&jobs[i]))
	}
	return resp, nil
}

func (s *JobService) ListMine(ctx context.Context, posterID string) (*dto.JobListResponse, error) {
	jobs, err := s.jobs.FindByPoster(posterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.JobListResponse{
		Jobs: make([]dto.JobResponse, 0, len(jobs)),
		Pagination: dto.Pagination{
			Page:     1,
			PageSize: len(jobs),
			Total:    int64(len(jobs)),
		},
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, dto.ToJobResponse(&jobs[i]))
	}
	return resp, nil
}

// AttachImage links an uploaded file to a job owned by userID.
func (s *JobService) AttachImage(ctx context.Context, jobID, uploadID, userID string) error {
	if _, err := s.ownedJob(jobID, userID); err != nil {
		return err
	}

	upload, err := s.uploads.FindByID(uploadID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if upload.UserID != userID {
		return apperrors.NewForbiddenError("You do not own this upload")
	}

	if err := s.uploads.AttachToJob(uploadID, jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobService) ownedJob(jobID, userID string) (*models.Job, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.PosterID != userID {
		return nil, apperrors.ErrJobAccessDenied
	}
	return job, nil
}

func applyJobUpdate(job *models.Job, req dto.UpdateJobRequest) {
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.PropertyKind != nil {
		job.PropertyKind = *req.PropertyKind
	}
	if req.Area != nil {
		job.Area = req.Area
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.Address != nil {
		job.Address = *req.Address
	}
	if req.Budget != nil {
		job.Budget = req.Budget
	}
	if req.StartDate != nil {
		job.StartDate = req.StartDate
	}
	if req.Extras != nil {
		job.Extras = *req.Extras
	}
}
