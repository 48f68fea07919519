package usecase

import (
	"context"

	"github.com/aduvernay/staffing-api/internal/repository"
)

type StaffingUsecase struct {
	repo repository.StaffingRepository
}

func NewStaffingUsecase(repo repository.StaffingRepository) *StaffingUsecase {
	return &StaffingUsecase{repo: repo}
}

func (u *StaffingUsecase) TaskDetails(ctx context.Context) ([]map[string]any, error) {
	return u.repo.TaskDetails(ctx)
}

func (u *StaffingUsecase) PersonSkills(ctx context.Context) ([]map[string]any, error) {
	return u.repo.PersonSkills(ctx)
}

func (u *StaffingUsecase) AssignTask(ctx context.Context, personID, taskID int64) error {
	return u.repo.AssignTask(ctx, personID, taskID)
}

func (u *StaffingUsecase) UpdateTimeSpent(ctx context.Context, personID, taskID int64, hours float64) error {
	return u.repo.UpdateTimeSpent(ctx, personID, taskID, hours)
}
