package balance

import (
	"context"
	"fmt"

	balanceerrors "leaveflow/internal/balance/errors"
	"leaveflow/internal/domain"

	"gorm.io/gorm"
)

// Allotments is the stored per-category entitlement snapshot for one user.
type Allotments struct {
	Annual int `gorm:"column:annual_allotment"`
	Sick   int `gorm:"column:sick_allotment"`
	Casual int `gorm:"column:casual_allotment"`
}

func (a Allotments) ForCategory(category domain.LeaveCategory) int {
	switch category {
	case domain.CategoryAnnual:
		return a.Annual
	case domain.CategorySick:
		return a.Sick
	case domain.CategoryCasual:
		return a.Casual
	default:
		return 0
	}
}

// AnyPositive backs the EMERGENCY policy: emergency leave is allowed as
// long as any allotment is still positive.
func (a Allotments) AnyPositive() bool {
	return a.Annual > 0 || a.Sick > 0 || a.Casual > 0
}

var allotmentColumns = map[domain.LeaveCategory]string{
	domain.CategoryAnnual: "annual_allotment",
	domain.CategorySick:   "sick_allotment",
	domain.CategoryCasual: "casual_allotment",
}

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	GetAllotments(ctx context.Context, userID string) (Allotments, error)
	SumApprovedDays(ctx context.Context, userID string, category domain.LeaveCategory, year int) (int, error)
	DebitAllotment(ctx context.Context, userID string, category domain.LeaveCategory, days int) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAllotments(ctx context.Context, userID string) (Allotments, error) {
	var a Allotments
	err := r.db.WithContext(ctx).
		Table("users").
		Select("annual_allotment, sick_allotment, casual_allotment").
		Where("id = ?", userID).
		Where("deleted_at IS NULL").
		Take(&a).Error
	return a, err
}

func (r *repository) SumApprovedDays(ctx context.Context, userID string, category domain.LeaveCategory, year int) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Table("leaves").
		Select("COALESCE(SUM(duration), 0)").
		Where("user_id = ?", userID).
		Where("leave_type = ?", category).
		Where("status = ?", "APPROVED").
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Scan(&total).Error
	return total, err
}

// DebitAllotment decrements the stored allotment in a single conditional
// UPDATE. The non-negativity guard lives in the WHERE clause, so two
// concurrent debits for the same (user, category) can never drive the
// counter below zero or lose an update.
func (r *repository) DebitAllotment(ctx context.Context, userID string, category domain.LeaveCategory, days int) (int, error) {
	col, ok := allotmentColumns[category]
	if !ok {
		return 0, balanceerrors.ErrUnknownCategory
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s = %s - ?, updated_at = now()
		WHERE id = ? AND deleted_at IS NULL AND %s >= ?
		RETURNING %s
	`, col, col, col, col)

	var newBalance int
	res := r.db.WithContext(ctx).Raw(query, days, userID, days).Scan(&newBalance)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, balanceerrors.ErrInsufficientBalance
	}
	return newBalance, nil
}
