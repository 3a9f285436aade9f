package leave

import (
	"time"

	"leaveflow/internal/domain"
	"leaveflow/internal/user"

	"github.com/google/uuid"
)

// Leave rows are removed with a hard delete when an owner cancels a
// pending request, so there is no DeletedAt column here.
type Leave struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber string    `gorm:"type:varchar(20);uniqueIndex:uq_leaves_request_number"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_user_status"`

	LeaveType domain.LeaveCategory `gorm:"type:varchar(20);not null"`
	StartDate time.Time            `gorm:"type:date;not null;index:idx_leaves_start_date"`
	EndDate   time.Time            `gorm:"type:date;not null"`
	Duration  int                  `gorm:"type:int;not null;default:1"`
	Reason    string               `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_user_status"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	Comments   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User     *user.User `gorm:"foreignKey:UserID"`
	Approver *user.User `gorm:"foreignKey:ApprovedBy"`
}
