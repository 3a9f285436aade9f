package history

import (
	"context"

	leaveerrors "leaveflow/internal/leave/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=history_service.go -destination=mock/history_service_mock.go -package=mock
type Service interface {
	GetLeaveHistory(ctx context.Context, leaveID string) ([]HistoryResponse, error)
	GetUserHistory(ctx context.Context, userID string) ([]HistoryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("history.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("history.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetLeaveHistory(ctx context.Context, leaveID string) ([]HistoryResponse, error) {
	exists, err := s.repo.LeaveExists(ctx, leaveID)
	if err != nil {
		s.logger.Error("get leave history existence check failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return nil, err
	}
	if !exists {
		return nil, leaveerrors.ErrLeaveNotFound
	}

	entries, err := s.repo.FindByLeave(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) GetUserHistory(ctx context.Context, userID string) ([]HistoryResponse, error) {
	entries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}
