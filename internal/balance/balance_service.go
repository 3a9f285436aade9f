package balance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	balanceerrors "leaveflow/internal/balance/errors"
	"leaveflow/internal/domain"
	"leaveflow/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RemainingKeyPrefix = "balance:remaining:"
	remainingCacheTTL  = 5 * time.Minute
)

func RemainingCacheKey(userID string, category domain.LeaveCategory) string {
	return RemainingKeyPrefix + userID + ":" + string(category)
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	// Remaining derives allotment minus approved days for the current
	// year, floored at zero.
	Remaining(ctx context.Context, userID string, category domain.LeaveCategory) (int, error)
	UsedDays(ctx context.Context, userID string, category domain.LeaveCategory, year int) (int, error)
	HasSufficient(ctx context.Context, userID string, category domain.LeaveCategory, days int) (bool, error)
	Debit(ctx context.Context, userID string, category domain.LeaveCategory, days int) (int, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Remaining(ctx context.Context, userID string, category domain.LeaveCategory) (int, error) {
	if !category.Valid() {
		return 0, balanceerrors.ErrUnknownCategory
	}
	if !category.HasAllotment() {
		return 0, balanceerrors.ErrNoAllotment
	}

	cacheKey := RemainingCacheKey(userID, category)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			if n, convErr := strconv.Atoi(cached); convErr == nil {
				return n, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		remaining, err := s.computeRemaining(ctx, userID, category)
		if err != nil {
			return 0, err
		}

		if s.rdb != nil {
			s.rdb.Set(ctx, cacheKey, strconv.Itoa(remaining), remainingCacheTTL)
		}
		return remaining, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (s *service) computeRemaining(ctx context.Context, userID string, category domain.LeaveCategory) (int, error) {
	allotments, err := s.repo.GetAllotments(ctx, userID)
	if err != nil {
		return 0, err
	}

	used, err := s.repo.SumApprovedDays(ctx, userID, category, time.Now().Year())
	if err != nil {
		return 0, err
	}

	remaining := allotments.ForCategory(category) - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *service) UsedDays(ctx context.Context, userID string, category domain.LeaveCategory, year int) (int, error) {
	if !category.Valid() {
		return 0, balanceerrors.ErrUnknownCategory
	}
	if year <= 0 {
		year = time.Now().Year()
	}
	return s.repo.SumApprovedDays(ctx, userID, category, year)
}

// HasSufficient checks the stored allotment, not the derived remaining.
// EMERGENCY has no allotment of its own and passes as long as any
// allotment is still positive.
func (s *service) HasSufficient(ctx context.Context, userID string, category domain.LeaveCategory, days int) (bool, error) {
	if !category.Valid() {
		return false, balanceerrors.ErrUnknownCategory
	}
	if days <= 0 {
		return false, balanceerrors.ErrInvalidDays
	}

	allotments, err := s.repo.GetAllotments(ctx, userID)
	if err != nil {
		return false, err
	}

	if category == domain.CategoryEmergency {
		return allotments.AnyPositive(), nil
	}
	return allotments.ForCategory(category) >= days, nil
}

func (s *service) Debit(ctx context.Context, userID string, category domain.LeaveCategory, days int) (int, error) {
	rid := contextutil.GetRequestID(ctx)
	if !category.HasAllotment() {
		return 0, balanceerrors.ErrNoAllotment
	}
	if days <= 0 {
		return 0, balanceerrors.ErrInvalidDays
	}

	newBalance, err := s.repo.DebitAllotment(ctx, userID, category, days)
	if err != nil {
		s.logger.Warn("debit allotment failed",
			zap.String("request_id", rid),
			zap.String("user_id", userID),
			zap.String("category", string(category)),
			zap.Int("days", days),
			zap.Error(err),
		)
		return 0, err
	}

	s.logger.Info("allotment debited",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("category", string(category)),
		zap.Int("days", days),
		zap.Int("new_balance", newBalance),
	)

	s.invalidateRemaining(ctx, userID, category)
	return newBalance, nil
}

func (s *service) invalidateRemaining(ctx context.Context, userID string, category domain.LeaveCategory) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, RemainingCacheKey(userID, category)).Err(); err != nil {
		s.logger.Warn("invalidate remaining cache failed",
			zap.String("key", fmt.Sprintf("%s%s:%s", RemainingKeyPrefix, userID, category)),
			zap.Error(err),
		)
	}
}
