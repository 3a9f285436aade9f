package user

import (
	"context"

	"leaveflow/internal/domain"
	usererrors "leaveflow/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetEmployees(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, MapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) GetEmployees(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, MapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, MapRepositoryError(err)
	}
	return MapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("toggle status find user failed", zap.String("user_id", id), zap.Error(err))
		return MapRepositoryError(err)
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("toggle status persist failed", zap.String("user_id", id), zap.Error(err))
		return MapRepositoryError(err)
	}

	s.logger.Info("user status updated",
		zap.String("user_id", id),
		zap.Bool("is_active", isActive),
	)
	return nil
}

func MapToResponse(u User) UserResponse {
	return UserResponse{
		ID:              u.ID.String(),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		Email:           u.Email,
		Role:            u.Role.String(),
		IsActive:        u.IsActive,
		AnnualAllotment: u.AnnualAllotment,
		SickAllotment:   u.SickAllotment,
		CasualAllotment: u.CasualAllotment,
		CreatedAt:       u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = MapToResponse(u)
	}
	return resp
}
