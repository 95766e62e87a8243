package services

import (
	"context"
	"errors"

	"buildxpert/internal/dto"
	"buildxpert/internal/email"
	"buildxpert/internal/models"
	"buildxpert/internal/repositories"
	"buildxpert/pkg/apperrors"
)

type TemplateService struct {
	templates repositories.TemplateRepository
}

func NewTemplateService(templates repositories.TemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

func (s *TemplateService) Create(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	// Refuse to save a template that cannot render.
	if _, _, err := email.RenderTemplate(req.Subject, req.Body, map[string]string{}); err != nil {
		return nil, apperrors.NewBadRequestError("Template does not parse: " + err.Error())
	}

	template := &models.EmailTemplate{
		Name:      req.Name,
		Subject:   req.Subject,
		Body:      req.Body,
		Variables: req.Variables,
	}
	if err := s.templates.Create(template); err != nil {
		return nil, apperrors.ErrAlreadyExists(err)
	}

	resp := dto.ToTemplateResponse(template)
	return &resp, nil
}

func (s *TemplateService) Update(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := s.templates.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Subject != nil {
		template.Subject = *req.Subject
	}
	if req.Body != nil {
		template.Body = *req.Body
	}
	if req.Variables != nil {
		template.Variables = *req.Variables
	}

	if _, _, err := email.RenderTemplate(template.Subject, template.Body, map[string]string{}); err != nil {
		return nil, apperrors.NewBadRequestError("Template does not parse: " + err.Error())
	}

	if err := s.templates.Update(template); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToTemplateResponse(template)
	return &resp, nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	template, err := s.templates.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.ToTemplateResponse(template)
	return &resp, nil
}

func (s *TemplateService) List(ctx context.Context) ([]dto.TemplateResponse, error) {
	templates, err := s.templates.List()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		resp = append(resp, dto.ToTemplateResponse(&templates[i]))
	}
	return resp, nil
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if _, err := s.templates.FindByID(id); err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.templates.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
