package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmranwar/guardpost-backend/pkg/db/types"
)

// Client is a contracting customer of the guard service.
type Client struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Industry  string    `gorm:"column:industry" json:"industry"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Email     string    `gorm:"column:email" json:"email"`
	Status    string    `gorm:"column:status;not null;default:active" json:"status"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// ClientContact is a named point of contact at a client.
type ClientContact struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"column:client_id;type:uuid;not null;index" json:"client_id"`
	Name     string    `gorm:"column:name;not null" json:"name"`
	Role     string    `gorm:"column:role" json:"role"`
	Phone    string    `gorm:"column:phone" json:"phone"`
	Email    string    `gorm:"column:email" json:"email"`
}

func (ClientContact) TableName() string {
	return "client_contacts"
}

// ClientAddress is a billing or correspondence address for a client.
type ClientAddress struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"column:client_id;type:uuid;not null;index" json:"client_id"`
	Label    string    `gorm:"column:label" json:"label"`
	Line1    string    `gorm:"column:line1;not null" json:"line1"`
	Line2    string    `gorm:"column:line2" json:"line2"`
	City     string    `gorm:"column:city" json:"city"`
	Region   string    `gorm:"column:region" json:"region"`
	Country  string    `gorm:"column:country" json:"country"`
}

func (ClientAddress) TableName() string {
	return "client_addresses"
}

// ClientSite is a guarded location belonging to a client.
type ClientSite struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ClientID       uuid.UUID `gorm:"column:client_id;type:uuid;not null;index" json:"client_id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Address        string    `gorm:"column:address" json:"address"`
	GuardsRequired int       `gorm:"column:guards_required;not null;default:0" json:"guards_required"`
	Status         string    `gorm:"column:status;not null;default:active" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ClientSite) TableName() string {
	return "client_sites"
}

// ClientContract is a service agreement with a client.
type ClientContract struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ClientID       uuid.UUID        `gorm:"column:client_id;type:uuid;not null;index" json:"client_id"`
	ContractNumber string           `gorm:"column:contract_number;not null" json:"contract_number"`
	StartDate      types.Date       `gorm:"column:start_date;not null" json:"start_date"`
	EndDate        *types.Date      `gorm:"column:end_date" json:"end_date"`
	MonthlyValue   *decimal.Decimal `gorm:"column:monthly_value;type:numeric(14,2)" json:"monthly_value"`
	Status         string           `gorm:"column:status;not null;default:active" json:"status"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ClientContract) TableName() string {
	return "client_contracts"
}

// SiteAssignment places a guard on a client site for a date range; a nil
// ToDate means the posting is open-ended.
type SiteAssignment struct {
	ID         uuid.UUID   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SiteID     uuid.UUID   `gorm:"column:site_id;type:uuid;not null;index" json:"site_id"`
	EmployeeID string      `gorm:"column:employee_id;not null;index" json:"employee_id"`
	Shift      string      `gorm:"column:shift" json:"shift"`
	FromDate   types.Date  `gorm:"column:from_date;not null" json:"from_date"`
	ToDate     *types.Date `gorm:"column:to_date" json:"to_date"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SiteAssignment) TableName() string {
	return "site_assignments"
}
