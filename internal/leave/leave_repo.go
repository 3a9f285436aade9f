package leave

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByUser(ctx context.Context, userID string) ([]Leave, error)
	FindByStatus(ctx context.Context, status string) ([]Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	UpdateDecision(ctx context.Context, id, status string, approvedBy string, approvedAt time.Time, comments *string) (int64, error)
	DeleteIfPendingOwnedBy(ctx context.Context, id, ownerID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose writes run on the given transaction
// handle instead of the pooled connection.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Omit("User", "Approver").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Approver").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("Approver").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Approver").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Approver").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

// UpdateDecision only moves rows that are still PENDING. The returned
// row count tells the caller whether it won the transition; a zero
// means someone else decided first.
func (r *repository) UpdateDecision(ctx context.Context, id, status string, approvedBy string, approvedAt time.Time, comments *string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approvedBy,
			"approved_at": approvedAt,
			"comments":    comments,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteIfPendingOwnedBy(ctx context.Context, id, ownerID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", ownerID).
		Where("status = ?", StatusPending).
		Delete(&Leave{})
	return res.RowsAffected, res.Error
}
