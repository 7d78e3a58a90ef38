package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmranwar/guardpost-backend/pkg/db/types"
)

// Employee is a guard or staff member, keyed for the API by the generated
// business code in EmployeeID rather than the synthetic row id.
type Employee struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID  string           `gorm:"column:employee_id;not null;uniqueIndex" json:"employee_id"`
	FullName    string           `gorm:"column:full_name;not null" json:"full_name"`
	CNIC        string           `gorm:"column:cnic" json:"cnic"`
	Phone       string           `gorm:"column:phone" json:"phone"`
	Email       string           `gorm:"column:email" json:"email"`
	Status      string           `gorm:"column:status;not null;default:Active" json:"status"`
	Unit        string           `gorm:"column:unit" json:"unit"`
	Rank        string           `gorm:"column:rank" json:"rank"`
	DeployedAt  string           `gorm:"column:deployed_at" json:"deployed_at"`
	DateOfBirth *types.Date      `gorm:"column:date_of_birth" json:"date_of_birth"`
	JoiningDate *types.Date      `gorm:"column:joining_date" json:"joining_date"`
	Address     string           `gorm:"column:address" json:"address"`
	BasicPay    *decimal.Decimal `gorm:"column:basic_pay;type:numeric(12,2)" json:"basic_pay"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeWarning is a disciplinary note attached to an employee.
type EmployeeWarning struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID string     `gorm:"column:employee_id;not null;index" json:"employee_id"`
	Date       types.Date `gorm:"column:date;not null" json:"date"`
	Category   string     `gorm:"column:category" json:"category"`
	Details    string     `gorm:"column:details" json:"details"`
	IssuedBy   string     `gorm:"column:issued_by" json:"issued_by"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (EmployeeWarning) TableName() string {
	return "employee_warnings"
}

// EmployeeDocument stores file metadata for an employee record; the blob
// itself lives in external storage keyed by URL.
type EmployeeDocument struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID string    `gorm:"column:employee_id;not null;index" json:"employee_id"`
	Filename   string    `gorm:"column:filename;not null" json:"filename"`
	URL        string    `gorm:"column:url;not null" json:"url"`
	MimeType   string    `gorm:"column:mime_type" json:"mime_type"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (EmployeeDocument) TableName() string {
	return "employee_documents"
}
