package balance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"leaveflow/internal/balance"
	balanceerrors "leaveflow/internal/balance/errors"
	"leaveflow/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeBalanceRepository struct {
	getAllotmentsFn   func(ctx context.Context, userID string) (balance.Allotments, error)
	sumApprovedDaysFn func(ctx context.Context, userID string, category domain.LeaveCategory, year int) (int, error)
	debitAllotmentFn  func(ctx context.Context, userID string, category domain.LeaveCategory, days int) (int, error)
}

func (f *fakeBalanceRepository) GetAllotments(ctx context.Context, userID string) (balance.Allotments, error) {
	if f.getAllotmentsFn != nil {
		return f.getAllotmentsFn(ctx, userID)
	}
	return balance.Allotments{Annual: 25, Sick: 10, Casual: 5}, nil
}

func (f *fakeBalanceRepository) SumApprovedDays(ctx context.Context, userID string, category domain.LeaveCategory, year int) (int, error) {
	if f.sumApprovedDaysFn != nil {
		return f.sumApprovedDaysFn(ctx, userID, category, year)
	}
	return 0, nil
}

func (f *fakeBalanceRepository) DebitAllotment(ctx context.Context, userID string, category domain.LeaveCategory, days int) (int, error) {
	if f.debitAllotmentFn != nil {
		return f.debitAllotmentFn(ctx, userID, category, days)
	}
	return 0, nil
}

func TestBalanceService_Remaining(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success derives allotment minus approved days", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			getAllotmentsFn: func(ctx context.Context, uid string) (balance.Allotments, error) {
				assert.Equal(t, userID, uid)
				return balance.Allotments{Annual: 25, Sick: 10, Casual: 5}, nil
			},
			sumApprovedDaysFn: func(ctx context.Context, uid string, category domain.LeaveCategory, year int) (int, error) {
				assert.Equal(t, domain.CategoryAnnual, category)
				assert.Equal(t, time.Now().Year(), year)
				return 5, nil
			},
		}
		svc := balance.NewService(repo, nil)

		got, err := svc.Remaining(ctx, userID, domain.CategoryAnnual)

		assert.NoError(t, err)
		assert.Equal(t, 20, got)
	})

	t.Run("success floors at zero", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			sumApprovedDaysFn: func(ctx context.Context, uid string, category domain.LeaveCategory, year int) (int, error) {
				return 12, nil
			},
		}
		svc := balance.NewService(repo, nil)

		got, err := svc.Remaining(ctx, userID, domain.CategorySick)

		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("success serves cached value", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(balance.RemainingCacheKey(userID, domain.CategoryAnnual)).SetVal("12")

		repoCalled := false
		repo := &fakeBalanceRepository{
			getAllotmentsFn: func(ctx context.Context, uid string) (balance.Allotments, error) {
				repoCalled = true
				return balance.Allotments{}, nil
			},
		}
		svc := balance.NewService(repo, rdb)

		got, err := svc.Remaining(ctx, userID, domain.CategoryAnnual)

		assert.NoError(t, err)
		assert.Equal(t, 12, got)
		assert.False(t, repoCalled)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success caches computed value", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		key := balance.RemainingCacheKey(userID, domain.CategoryCasual)
		redisMock.ExpectGet(key).RedisNil()
		redisMock.ExpectSet(key, "5", 5*time.Minute).SetVal("OK")

		svc := balance.NewService(&fakeBalanceRepository{}, rdb)

		got, err := svc.Remaining(ctx, userID, domain.CategoryCasual)

		assert.NoError(t, err)
		assert.Equal(t, 5, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative emergency has no allotment", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{}, nil)

		_, err := svc.Remaining(ctx, userID, domain.CategoryEmergency)

		assert.ErrorIs(t, err, balanceerrors.ErrNoAllotment)
	})
}

func TestBalanceService_HasSufficient(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success stored allotment covers request", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{}, nil)

		ok, err := svc.HasSufficient(ctx, userID, domain.CategoryAnnual, 25)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("negative stored allotment too small", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{}, nil)

		ok, err := svc.HasSufficient(ctx, userID, domain.CategoryCasual, 6)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("success emergency passes while any allotment positive", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			getAllotmentsFn: func(ctx context.Context, uid string) (balance.Allotments, error) {
				return balance.Allotments{Annual: 0, Sick: 1, Casual: 0}, nil
			},
		}
		svc := balance.NewService(repo, nil)

		ok, err := svc.HasSufficient(ctx, userID, domain.CategoryEmergency, 30)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("negative emergency exhausted", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			getAllotmentsFn: func(ctx context.Context, uid string) (balance.Allotments, error) {
				return balance.Allotments{}, nil
			},
		}
		svc := balance.NewService(repo, nil)

		ok, err := svc.HasSufficient(ctx, userID, domain.CategoryEmergency, 1)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("negative zero days", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{}, nil)

		_, err := svc.HasSufficient(ctx, userID, domain.CategoryAnnual, 0)

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidDays)
	})
}

func TestBalanceService_Debit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success invalidates cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel(balance.RemainingCacheKey(userID, domain.CategoryAnnual)).SetVal(1)

		repo := &fakeBalanceRepository{
			debitAllotmentFn: func(ctx context.Context, uid string, category domain.LeaveCategory, days int) (int, error) {
				assert.Equal(t, 3, days)
				return 22, nil
			},
		}
		svc := balance.NewService(repo, rdb)

		newBalance, err := svc.Debit(ctx, userID, domain.CategoryAnnual, 3)

		assert.NoError(t, err)
		assert.Equal(t, 22, newBalance)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			debitAllotmentFn: func(ctx context.Context, uid string, category domain.LeaveCategory, days int) (int, error) {
				return 0, balanceerrors.ErrInsufficientBalance
			},
		}
		svc := balance.NewService(repo, nil)

		_, err := svc.Debit(ctx, userID, domain.CategoryAnnual, 30)

		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
	})

	t.Run("negative emergency cannot be debited", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{}, nil)

		_, err := svc.Debit(ctx, userID, domain.CategoryEmergency, 1)

		assert.ErrorIs(t, err, balanceerrors.ErrNoAllotment)
	})

	t.Run("negative repo failure propagates", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			debitAllotmentFn: func(ctx context.Context, uid string, category domain.LeaveCategory, days int) (int, error) {
				return 0, errors.New("connection reset")
			},
		}
		svc := balance.NewService(repo, nil)

		_, err := svc.Debit(ctx, userID, domain.CategorySick, 2)

		assert.Error(t, err)
	})
}

func TestBalanceService_UsedDays(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success defaults to current year", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			sumApprovedDaysFn: func(ctx context.Context, uid string, category domain.LeaveCategory, year int) (int, error) {
				assert.Equal(t, time.Now().Year(), year)
				return 4, nil
			},
		}
		svc := balance.NewService(repo, nil)

		got, err := svc.UsedDays(ctx, userID, domain.CategoryAnnual, 0)

		assert.NoError(t, err)
		assert.Equal(t, 4, got)
	})
}
