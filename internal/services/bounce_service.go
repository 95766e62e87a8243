package services

import (
	"context"

	"buildxpert/internal/dto"
	"buildxpert/internal/models"
	"buildxpert/internal/repositories"
	"buildxpert/pkg/apperrors"
)

type BounceService struct {
	bounces repositories.BounceRepository
}

func NewBounceService(bounces repositories.BounceRepository) *BounceService {
	return &BounceService{bounces: bounces}
}

// Record stores a provider bounce notification. Future sends to the
// address are suppressed.
func (s *BounceService) Record(ctx context.Context, req dto.BounceWebhookRequest) error {
	bounce := &models.Bounce{
		Email:       req.Email,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := s.bounces.Create(bounce); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *BounceService) List(ctx context.Context, page, pageSize int) (*dto.BounceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	bounces, total, err := s.bounces.List(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.BounceListResponse{
		Bounces: make([]dto.BounceResponse, 0, len(bounces)),
		Pagination: dto.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}
	for _, b := range bounces {
		resp.Bounces = append(resp.Bounces, dto.BounceResponse{
			ID:          b.ID,
			Email:       b.Email,
			Type:        b.Type,
			Description: b.Description,
			CreatedAt:   b.CreatedAt,
		})
	}
	return resp, nil
}

// Unsuppress removes an address from the bounce list so mail flows
// again.
func (s *BounceService) Unsuppress(ctx context.Context, emailAddr string) error {
	if err := s.bounces.DeleteByEmail(emailAddr); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
