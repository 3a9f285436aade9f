package history

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionApplied   = "APPLIED"
	ActionApproved  = "APPROVED"
	ActionRejected  = "REJECTED"
	ActionCancelled = "CANCELLED"
)

// HistoryEntry is one immutable line in a leave's audit trail. Entries
// are only ever inserted, never updated or deleted.
type HistoryEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID     uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_histories_leave"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_histories_user"`
	Action      string    `gorm:"type:varchar(20);not null"`
	Description string    `gorm:"type:text"`
	PerformedBy uuid.UUID `gorm:"type:uuid;not null"`
	OldStatus   *string   `gorm:"type:varchar(20)"`
	NewStatus   string    `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
}

func (HistoryEntry) TableName() string {
	return "leave_histories"
}
