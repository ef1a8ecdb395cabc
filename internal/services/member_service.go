package services

import (
	"context"

	"membroBack/internal/models"
	"membroBack/internal/repositories"
)

type MemberService struct {
	MemberRepo *repositories.MemberRepository
}

func validateCreateMember(m models.Member) error {
	if m.Name == "" {
		return models.NewValidationError("name is required")
	}
	if m.Email == "" {
		return models.NewValidationError("email is required")
	}
	if m.Address == "" {
		return models.NewValidationError("address is required")
	}
	if m.CenterID == 0 {
		return models.NewValidationError("centerId is required")
	}
	if m.Status != "" && m.Status != models.MemberStatusActive && m.Status != models.MemberStatusInactive {
		return models.NewValidationError("unknown member status: " + m.Status)
	}
	return nil
}

func (s *MemberService) CreateMember(ctx context.Context, m models.Member) (models.Member, error) {
	if err := validateCreateMember(m); err != nil {
		return models.Member{}, err
	}
	if m.Status == "" {
		m.Status = models.MemberStatusActive
	}
	return s.MemberRepo.CreateMember(ctx, m)
}

func (s *MemberService) GetMemberByID(ctx context.Context, id int) (models.Member, error) {
	return s.MemberRepo.GetMemberByID(ctx, id)
}

func (s *MemberService) UpdateMember(ctx context.Context, id int, patch models.MemberPatch) (models.Member, error) {
	if patch.Status != nil && *patch.Status != "" &&
		*patch.Status != models.MemberStatusActive && *patch.Status != models.MemberStatusInactive {
		return models.Member{}, models.NewValidationError("unknown member status: " + *patch.Status)
	}
	return s.MemberRepo.UpdateMember(ctx, id, patch)
}

func (s *MemberService) DeleteMember(ctx context.Context, id int) error {
	return s.MemberRepo.DeleteMember(ctx, id)
}

func (s *MemberService) ListMembers(ctx context.Context, filter models.MemberFilter) ([]models.Member, error) {
	return s.MemberRepo.ListMembers(ctx, filter)
}

func (s *MemberService) Statistics(ctx context.Context) (models.MemberStatistics, error) {
	return s.MemberRepo.Statistics(ctx)
}
