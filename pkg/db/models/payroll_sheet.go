package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmranwar/guardpost-backend/pkg/enums"
)

// PayrollSheet holds externally computed pay figures for one employee and
// month (YYYY-MM). Computation is out of scope; the sheet is storage only.
type PayrollSheet struct {
	ID             uuid.UUID                `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Month          string                   `gorm:"column:month;not null;uniqueIndex:idx_payroll_month_employee" json:"month"`
	EmployeeID     string                   `gorm:"column:employee_id;not null;uniqueIndex:idx_payroll_month_employee" json:"employee_id"`
	BasicPay       decimal.Decimal          `gorm:"column:basic_pay;type:numeric(12,2);not null" json:"basic_pay"`
	Allowances     decimal.Decimal          `gorm:"column:allowances;type:numeric(12,2);not null" json:"allowances"`
	OvertimeAmount decimal.Decimal          `gorm:"column:overtime_amount;type:numeric(12,2);not null" json:"overtime_amount"`
	Deductions     decimal.Decimal          `gorm:"column:deductions;type:numeric(12,2);not null" json:"deductions"`
	FineAmount     decimal.Decimal          `gorm:"column:fine_amount;type:numeric(12,2);not null" json:"fine_amount"`
	NetPay         decimal.Decimal          `gorm:"column:net_pay;type:numeric(12,2);not null" json:"net_pay"`
	Status         enums.PayrollSheetStatus `gorm:"column:status;not null;default:draft" json:"status"`
	CreatedAt      time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PayrollSheet) TableName() string {
	return "payroll_sheets"
}
