package service

import (
	"context"

	"hubtrack/internal/dto"
	"hubtrack/internal/entity"
	"hubtrack/internal/repository"

	"github.com/google/uuid"
)

var completedStatuses = []entity.RecordStatus{
	entity.StatusVerified, entity.StatusSold, entity.StatusCompleted,
}

var inProgressStatuses = []entity.RecordStatus{
	entity.StatusInTransit, entity.StatusActive, entity.StatusReceived,
}

// AdminService covers the admin-only surface: user management and
// cross-owner views. Handlers behind the admin role gate are the only
// callers.
type AdminService struct {
	users   repository.UserRepository
	records repository.RecordRepository
}

func NewAdminService(users repository.UserRepository, records repository.RecordRepository) *AdminService {
	return &AdminService{users: users, records: records}
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]dto.AdminUserResponse, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		count, err := s.records.CountByOwner(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.AdminUserResponseFromEntity(&users[i], count))
	}
	return responses, nil
}

func (s *AdminService) ListAllRecords(ctx context.Context, status string, limit, offset int) ([]entity.HubRecord, int64, error) {
	filter := entity.RecordStatus(status)
	if status != "" && !filter.IsValid() {
		return nil, 0, ErrInvalidInput
	}
	return s.records.ListAll(ctx, filter, limit, offset)
}

func (s *AdminService) GlobalStats(ctx context.Context) (*dto.GlobalStatsResponse, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRecords, err := s.records.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.records.CountByStatuses(ctx, []entity.RecordStatus{entity.StatusPending})
	if err != nil {
		return nil, err
	}
	completed, err := s.records.CountByStatuses(ctx, completedStatuses)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.records.CountByStatuses(ctx, inProgressStatuses)
	if err != nil {
		return nil, err
	}
	revenue, err := s.records.SumAmountPaid(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.GlobalStatsResponse{
		TotalUsers:   totalUsers,
		TotalRecords: totalRecords,
		Pending:      pending,
		Completed:    completed,
		InProgress:   inProgress,
		TotalRevenue: revenue,
	}, nil
}

func (s *AdminService) SetUserActive(ctx context.Context, userID uuid.UUID, isActive bool) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.IsActive = isActive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) SetUserRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidInput
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
