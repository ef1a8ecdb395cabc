package services

import (
	"context"

	"membroBack/internal/models"
	"membroBack/internal/repositories"
)

type CenterService struct {
	CenterRepo *repositories.CenterRepository
}

func validateCenter(c models.Center) error {
	if c.Name == "" {
		return models.NewValidationError("name is required")
	}
	if c.Address == "" {
		return models.NewValidationError("address is required")
	}
	if c.MonthlyDues < 0 {
		return models.NewValidationError("monthlyDues must not be negative")
	}
	return nil
}

func (s *CenterService) CreateCenter(ctx context.Context, c models.Center) (models.Center, error) {
	if err := validateCenter(c); err != nil {
		return models.Center{}, err
	}
	c.Active = true
	return s.CenterRepo.CreateCenter(ctx, c)
}

func (s *CenterService) GetCenterByID(ctx context.Context, id int) (models.Center, error) {
	return s.CenterRepo.GetCenterByID(ctx, id)
}

func (s *CenterService) UpdateCenter(ctx context.Context, c models.Center) error {
	if err := validateCenter(c); err != nil {
		return err
	}
	return s.CenterRepo.UpdateCenter(ctx, c)
}

func (s *CenterService) DeleteCenter(ctx context.Context, id int) error {
	return s.CenterRepo.DeleteCenter(ctx, id)
}

func (s *CenterService) ListCenters(ctx context.Context, filter models.CenterFilter) ([]models.Center, error) {
	return s.CenterRepo.ListCenters(ctx, filter)
}
