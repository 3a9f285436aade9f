package user

import (
	"time"

	"leaveflow/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User stores the account plus the per-category leave allotments for the
// current accounting year. The allotment columns are what the approval
// workflow debits; remaining balance is always derived, never stored.
type User struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName string      `gorm:"column:first_name;type:varchar(50);not null"`
	LastName  string      `gorm:"column:last_name;type:varchar(50);not null"`
	Email     string      `gorm:"column:email;type:text;not null;uniqueIndex:uq_user_email"`
	Password  string      `gorm:"column:password;type:text;not null"`
	Role      domain.Role `gorm:"column:role;type:varchar(20);not null;default:'EMPLOYEE'"`
	IsActive  bool        `gorm:"column:is_active;default:true"`

	AnnualAllotment int `gorm:"column:annual_allotment;type:int;not null;default:25"`
	SickAllotment   int `gorm:"column:sick_allotment;type:int;not null;default:10"`
	CasualAllotment int `gorm:"column:casual_allotment;type:int;not null;default:5"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
