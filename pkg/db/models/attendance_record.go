package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	"github.com/hmranwar/guardpost-backend/pkg/enums"
)

// AttendanceRecord is one employee's attendance for one calendar day.
// The (employee_id, date) pair is the logical identity; bulk upsert
// replaces the whole row, so optional fields are pointers and absent
// inputs null the stored value.
type AttendanceRecord struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID      string                 `gorm:"column:employee_id;not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Date            types.Date             `gorm:"column:date;not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	Status          enums.AttendanceStatus `gorm:"column:status;not null" json:"status"`
	Note            *string                `gorm:"column:note" json:"note"`
	OvertimeMinutes *int                   `gorm:"column:overtime_minutes" json:"overtime_minutes"`
	OvertimeRate    *decimal.Decimal       `gorm:"column:overtime_rate;type:numeric(12,2)" json:"overtime_rate"`
	LateMinutes     *int                   `gorm:"column:late_minutes" json:"late_minutes"`
	LateDeduction   *decimal.Decimal       `gorm:"column:late_deduction;type:numeric(12,2)" json:"late_deduction"`
	LeaveType       *string                `gorm:"column:leave_type" json:"leave_type"`
	FineAmount      *decimal.Decimal       `gorm:"column:fine_amount;type:numeric(12,2)" json:"fine_amount"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}
