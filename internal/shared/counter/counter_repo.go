package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// LeaveCounter backs the request-number sequence, one row per
// (scope, counter_type). Scope is the year for leave requests.
type LeaveCounter struct {
	Scope       string `gorm:"primaryKey;type:varchar(20)"`
	CounterType string `gorm:"primaryKey;type:varchar(40)"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (LeaveCounter) TableName() string {
	return "leave_counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, scope string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic upsert-and-increment so concurrent submissions in the same
	// scope never draw the same number.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO leave_counters (scope, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (scope, counter_type) DO UPDATE
		SET last_value = leave_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scope, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
