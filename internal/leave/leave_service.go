package leave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"leaveflow/internal/balance"
	balanceerrors "leaveflow/internal/balance/errors"
	"leaveflow/internal/domain"
	"leaveflow/internal/events"
	"leaveflow/internal/history"
	leaveerrors "leaveflow/internal/leave/errors"
	"leaveflow/internal/messaging/kafka"
	"leaveflow/internal/shared/apperror"
	"leaveflow/internal/shared/contextutil"
	"leaveflow/internal/shared/counter"
	"leaveflow/internal/user"
	usererrors "leaveflow/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, approverID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, actorID string, actorRole domain.Role, id string) (LeaveResponse, error)
	GetUserLeaves(ctx context.Context, userID string) ([]LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	GetByStatus(ctx context.Context, status string) ([]LeaveResponse, error)
	RemainingDays(ctx context.Context, userID, leaveType string) (BalanceResponse, error)
	UsedDays(ctx context.Context, userID, leaveType string, year int) (BalanceResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	users     user.Repository
	balance   balance.Service
	histories history.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	balanceSvc balance.Service,
	histories history.Repository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, users, balanceSvc, histories, counterRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	balanceSvc balance.Service,
	histories history.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		users:     users,
		balance:   balanceSvc,
		histories: histories,
		counter:   counterRepo,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	ownerUUID, category, startDate, endDate, err := validateCreateRequest(userID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, usererrors.ErrUserNotFound
		}
		s.logger.Error("create leave owner lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !owner.IsActive {
		return LeaveResponse{}, usererrors.ErrUserInactive
	}

	enough, err := s.balance.HasSufficient(ctx, userID, category, req.Duration)
	if err != nil {
		s.logger.Error("create leave balance check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !enough {
		s.logger.Warn("create leave insufficient balance",
			zap.String("user_id", userID),
			zap.String("leave_type", category.String()),
			zap.Int("duration", req.Duration),
		)
		return LeaveResponse{}, balanceerrors.ErrInsufficientBalance
	}

	requestNumber := ""
	if s.counter != nil {
		scope := strconv.Itoa(startDate.Year())
		seq, err := s.counter.GetNextValue(ctx, scope, "leave_request")
		if err != nil {
			s.logger.Error("create leave request number failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		requestNumber = fmt.Sprintf("LV-%s-%06d", scope, seq)
	}

	l := &Leave{
		ID:            uuid.New(),
		RequestNumber: requestNumber,

		UserID:    ownerUUID,
		LeaveType: category,
		StartDate: startDate,
		EndDate:   endDate,
		Duration:  req.Duration,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	// Row and history entry commit or roll back together.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
			s.logger.Error("create leave persist failed", zap.Error(err))
			return err
		}

		if err := s.histories.WithTx(tx).Append(ctx, &history.HistoryEntry{
			ID:          uuid.New(),
			LeaveID:     l.ID,
			UserID:      ownerUUID,
			Action:      history.ActionApplied,
			Description: "leave request submitted",
			PerformedBy: ownerUUID,
			NewStatus:   StatusPending,
		}); err != nil {
			s.logger.Error("create leave history persist failed", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID),
		zap.String("leave_type", category.String()),
	)

	l.User = owner
	return mapToResponse(*l), nil
}

func (s *service) Decide(ctx context.Context, approverID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.String("decision", req.Decision),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidApproverID
	}

	approver, err := s.users.FindByID(ctx, approverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrApproverNotFound
		}
		s.logger.Error("decide leave approver lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !approver.Role.CanDecideLeave() {
		return LeaveResponse{}, apperror.ErrForbidden
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("decide leave already decided",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyDecided
	}

	targetStatus, ok := normalizeDecision(req.Decision)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	decidedAt := time.Now().UTC()

	// CAS transition, history entry and outbox event commit or roll back
	// together. A history or outbox failure must not leave a decided row
	// behind with no audit trail or no event.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.repo.WithTx(tx).UpdateDecision(ctx, id, targetStatus, approverID, decidedAt, req.Comments)
		if err != nil {
			s.logger.Error("decide leave persist failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return err
		}
		if rows == 0 {
			// Lost the race: another approver decided between our read
			// and this update.
			s.logger.Warn("decide leave transition lost",
				zap.String("leave_id", id),
				zap.String("target_status", targetStatus),
			)
			return leaveerrors.ErrLeaveAlreadyDecided
		}

		oldStatus := StatusPending
		description := "leave request " + strings.ToLower(targetStatus)
		if req.Comments != nil && *req.Comments != "" {
			description = *req.Comments
		}
		if err := s.histories.WithTx(tx).Append(ctx, &history.HistoryEntry{
			ID:          uuid.New(),
			LeaveID:     l.ID,
			UserID:      l.UserID,
			Action:      targetStatus,
			Description: description,
			PerformedBy: approverUUID,
			OldStatus:   &oldStatus,
			NewStatus:   targetStatus,
		}); err != nil {
			s.logger.Error("decide leave history persist failed", zap.Error(err))
			return err
		}

		if s.outbox != nil {
			event := events.LeaveDecidedEvent{
				EventType:  "leave_decided",
				RequestID:  rid,
				LeaveID:    l.ID.String(),
				UserID:     l.UserID.String(),
				DecidedBy:  approverID,
				LeaveType:  l.LeaveType.String(),
				Status:     targetStatus,
				Duration:   l.Duration,
				OccurredAt: decidedAt,
			}
			payload, err := json.Marshal(event)
			if err != nil {
				s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
				return err
			}

			if err := s.outbox.WithTx(tx.Statement.ConnPool).Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     rid,
				AggregateType: "leave",
				AggregateID:   l.ID.String(),
				EventType:     event.EventType,
				Topic:         events.LeaveDecisionTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("decide leave outbox persist failed",
					zap.String("leave_id", l.ID.String()),
					zap.Error(err),
				)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)

	// Approval stands even if the debit below fails; the derived
	// balance already reflects the approved days.
	if targetStatus == StatusApproved && l.LeaveType.HasAllotment() {
		if _, err := s.balance.Debit(ctx, l.UserID.String(), l.LeaveType, l.Duration); err != nil {
			s.logger.Warn("decide leave allotment debit failed",
				zap.String("request_id", rid),
				zap.String("leave_id", id),
				zap.String("user_id", l.UserID.String()),
				zap.Error(err),
			)
		}
	}

	decided, err := s.repo.FindByID(ctx, id)
	if err != nil {
		l.Status = targetStatus
		l.ApprovedBy = &approverUUID
		l.ApprovedAt = &decidedAt
		l.Comments = req.Comments
		l.Approver = approver
		return mapToResponse(*l), nil
	}
	return mapToResponse(*decided), nil
}

func (s *service) Cancel(ctx context.Context, userID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}
	ownerUUID, err := uuid.Parse(userID)
	if err != nil {
		return leaveerrors.ErrInvalidUserID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	if l.UserID.String() != userID {
		return leaveerrors.ErrNotLeaveOwner
	}
	if l.Status != StatusPending {
		return leaveerrors.ErrOnlyPendingDeletable
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.repo.WithTx(tx).DeleteIfPendingOwnedBy(ctx, id, userID)
		if err != nil {
			s.logger.Error("cancel leave delete failed", zap.String("leave_id", id), zap.Error(err))
			return err
		}
		if rows == 0 {
			return leaveerrors.ErrOnlyPendingDeletable
		}

		oldStatus := StatusPending
		if err := s.histories.WithTx(tx).Append(ctx, &history.HistoryEntry{
			ID:          uuid.New(),
			LeaveID:     l.ID,
			UserID:      l.UserID,
			Action:      history.ActionCancelled,
			Description: "leave request cancelled by owner",
			PerformedBy: ownerUUID,
			OldStatus:   &oldStatus,
			NewStatus:   history.ActionCancelled,
		}); err != nil {
			s.logger.Error("cancel leave history persist failed", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("cancel leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("user_id", userID),
	)
	return nil
}

func (s *service) GetByID(ctx context.Context, actorID string, actorRole domain.Role, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if actorRole != domain.RoleAdmin && l.UserID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotLeaveOwner
	}
	return mapToResponse(*l), nil
}

func (s *service) GetUserLeaves(ctx context.Context, userID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	return s.GetByStatus(ctx, StatusPending)
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]LeaveResponse, error) {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	switch normalized {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, leaveerrors.ErrInvalidStatusFilter
	}

	leaves, err := s.repo.FindByStatus(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) RemainingDays(ctx context.Context, userID, leaveType string) (BalanceResponse, error) {
	category, ok := domain.ParseLeaveCategory(leaveType)
	if !ok {
		return BalanceResponse{}, leaveerrors.ErrUnknownLeaveType
	}

	days, err := s.balance.Remaining(ctx, userID, category)
	if err != nil {
		return BalanceResponse{}, err
	}
	return BalanceResponse{
		UserID:    userID,
		LeaveType: category.String(),
		Days:      days,
	}, nil
}

func (s *service) UsedDays(ctx context.Context, userID, leaveType string, year int) (BalanceResponse, error) {
	category, ok := domain.ParseLeaveCategory(leaveType)
	if !ok {
		return BalanceResponse{}, leaveerrors.ErrUnknownLeaveType
	}
	if year <= 0 {
		year = time.Now().Year()
	}

	days, err := s.balance.UsedDays(ctx, userID, category, year)
	if err != nil {
		return BalanceResponse{}, err
	}
	return BalanceResponse{
		UserID:    userID,
		LeaveType: category.String(),
		Days:      days,
		Year:      year,
	}, nil
}

// normalizeDecision accepts both the imperative and the past form so
// clients can send APPROVE or APPROVED interchangeably.
func normalizeDecision(decision string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(decision)) {
	case "APPROVE", "APPROVED":
		return StatusApproved, true
	case "REJECT", "REJECTED":
		return StatusRejected, true
	default:
		return "", false
	}
}

func validateCreateRequest(userID string, req CreateLeaveRequest) (uuid.UUID, domain.LeaveCategory, time.Time, time.Time, error) {
	ownerUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, "", time.Time{}, time.Time{}, leaveerrors.ErrInvalidUserID
	}
	category, ok := domain.ParseLeaveCategory(req.LeaveType)
	if !ok {
		return uuid.Nil, "", time.Time{}, time.Time{}, leaveerrors.ErrUnknownLeaveType
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, "", time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, "", time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, "", time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if req.Duration < 1 {
		return uuid.Nil, "", time.Time{}, time.Time{}, leaveerrors.ErrInvalidDuration
	}
	return ownerUUID, category, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
