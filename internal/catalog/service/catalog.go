package service

import (
	"context"
	"net/http"

	"campusmove/internal/catalog/repository"
	"campusmove/pkg/config"
	apperrors "campusmove/pkg/errors"
	"campusmove/pkg/model"
)

const fetchErrorMessage = "Error fetching data"

type CatalogService interface {
	GetSchedules(ctx context.Context) ([]model.Document, error)
	GetRentalInventory(ctx context.Context) ([]model.Document, error)
	GetLocations(ctx context.Context) ([]model.Document, error)
}

type catalogService struct {
	repo repository.CatalogRepository
	cfg  *config.Config
}

func NewCatalogService(repo repository.CatalogRepository, cfg *config.Config) CatalogService {
	return &catalogService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *catalogService) GetSchedules(ctx context.Context) ([]model.Document, error) {
	return s.list(ctx, "schedules", s.repo.ListSchedules)
}

func (s *catalogService) GetRentalInventory(ctx context.Context) ([]model.Document, error) {
	return s.list(ctx, "rental_inventory", s.repo.ListRentalInventory)
}

func (s *catalogService) GetLocations(ctx context.Context) ([]model.Document, error) {
	return s.list(ctx, "locations", s.repo.ListLocations)
}

func (s *catalogService) list(ctx context.Context, name string, fetch func(context.Context) ([]model.Document, error)) ([]model.Document, error) {
	docs, err := fetch(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch collection",
			"collection", name,
			"error", err,
		)
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, fetchErrorMessage, http.StatusInternalServerError).
			WithDetails(map[string]any{"error": err.Error()})
	}
	if docs == nil {
		docs = []model.Document{}
	}
	return docs, nil
}
