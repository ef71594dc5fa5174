package service

import (
	"context"

	"nailbook/internal/catalog/repository"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/model"
)

// CatalogService serves the public services and staff listings. Only active
// rows are exposed; deactivated entries stay in the table for history.
type CatalogService interface {
	ActiveServices(ctx context.Context) ([]model.Service, error)
	ActiveStaffs(ctx context.Context) ([]model.Staff, error)
}

type catalogService struct {
	repo repository.CatalogRepository
	cfg  *config.Config
}

func NewCatalogService(repo repository.CatalogRepository, cfg *config.Config) CatalogService {
	return &catalogService{repo: repo, cfg: cfg}
}

func (s *catalogService) ActiveServices(ctx context.Context) ([]model.Service, error) {
	services, err := s.repo.Services(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load services", err)
	}

	out := make([]model.Service, 0, len(services))
	for _, svc := range services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *catalogService) ActiveStaffs(ctx context.Context) ([]model.Staff, error) {
	staffs, err := s.repo.Staffs(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load staffs", err)
	}

	out := make([]model.Staff, 0, len(staffs))
	for _, st := range staffs {
		if st.Active {
			out = append(out, st)
		}
	}
	return out, nil
}
