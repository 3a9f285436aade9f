package history

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=history_repo.go -destination=mock/history_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Append(ctx context.Context, entry *HistoryEntry) error
	FindByLeave(ctx context.Context, leaveID string) ([]HistoryEntry, error)
	FindByUser(ctx context.Context, userID string) ([]HistoryEntry, error)
	LeaveExists(ctx context.Context, leaveID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose appends run on the given transaction
// handle, so a history entry commits or rolls back with the mutation it
// records.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Append(ctx context.Context, entry *HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByLeave(ctx context.Context, leaveID string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", leaveID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) LeaveExists(ctx context.Context, leaveID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leaves").
		Where("id = ?", leaveID).
		Count(&count).Error
	return count > 0, err
}
