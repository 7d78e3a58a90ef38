package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/pkg/db/types"
)

// LeavePeriod is a closed date interval during which an employee is on
// leave of a specific type. For a given (employee_id, leave_type) the
// reconciler keeps periods pairwise non-overlapping and non-adjacent:
// a leave day next to an existing period extends it instead of creating
// a new row.
type LeavePeriod struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID string     `gorm:"column:employee_id;not null;index" json:"employee_id"`
	FromDate   types.Date `gorm:"column:from_date;not null" json:"from_date"`
	ToDate     types.Date `gorm:"column:to_date;not null" json:"to_date"`
	LeaveType  string     `gorm:"column:leave_type;not null" json:"leave_type"`
	Reason     string     `gorm:"column:reason" json:"reason"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LeavePeriod) TableName() string {
	return "leave_periods"
}
