package service

import (
	"context"
	"time"

	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/repository"
	"github.com/google/uuid"
)

type responsibleService struct {
	responsibles repository.ResponsibleRepo
}

func NewResponsibleService(responsibles repository.ResponsibleRepo) ResponsibleService {
	return &responsibleService{responsibles: responsibles}
}

func (s *responsibleService) Create(ctx context.Context, r *domain.Responsible) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.responsibles.Create(ctx, r)
}

func (s *responsibleService) GetByID(ctx context.Context, id string) (*domain.Responsible, error) {
	return s.responsibles.GetByID(ctx, id)
}

func (s *responsibleService) List(ctx context.Context, f domain.ResponsibleFilters) (*domain.PagedResult[*domain.Responsible], error) {
	if f.Limit <= 0 {
		f.Page = domain.DefaultPage()
	}
	return s.responsibles.List(ctx, f)
}

func (s *responsibleService) Update(ctx context.Context, r *domain.Responsible) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.responsibles.Update(ctx, r)
}

func (s *responsibleService) Delete(ctx context.Context, id string) error {
	return s.responsibles.Delete(ctx, id)
}
