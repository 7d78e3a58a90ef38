package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/pkg/enums"
)

// User is an API account. Superuser is the single elevated-access flag;
// there is no finer-grained tenant ACL.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	FullName     string         `gorm:"column:full_name" json:"full_name"`
	Role         enums.UserRole `gorm:"column:role;not null" json:"role"`
	Superuser    bool           `gorm:"column:superuser;not null;default:false" json:"superuser"`
	Active       bool           `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
