package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/pkg/enums"
)

// RestrictedInventoryItem is a serialized/restricted equipment type. It
// carries no on-hand quantity; stock is implicit in the units owned.
type RestrictedInventoryItem struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ItemCode        string    `gorm:"column:item_code;not null;uniqueIndex" json:"item_code"`
	Name            string    `gorm:"column:name;not null" json:"name"`
	Category        string    `gorm:"column:category" json:"category"`
	LicenseRequired bool      `gorm:"column:license_required;not null;default:false" json:"license_required"`
	Notes           string    `gorm:"column:notes" json:"notes"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RestrictedInventoryItem) TableName() string {
	return "restricted_inventory_items"
}

// SerialUnit is one physically identifiable unit of a restricted item.
// IssuedToEmployeeID is set iff Status is issued; only the custody
// tracker mutates these two columns.
type SerialUnit struct {
	ID                 uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ItemCode           string                 `gorm:"column:item_code;not null;uniqueIndex:idx_serial_units_item_serial" json:"item_code"`
	SerialNumber       string                 `gorm:"column:serial_number;not null;uniqueIndex:idx_serial_units_item_serial" json:"serial_number"`
	Status             enums.SerialUnitStatus `gorm:"column:status;not null;default:in_stock" json:"status"`
	IssuedToEmployeeID *string                `gorm:"column:issued_to_employee_id" json:"issued_to_employee_id"`
	CreatedAt          time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SerialUnit) TableName() string {
	return "restricted_serial_units"
}

// RestrictedTransaction is one immutable custody ledger row. Rows are
// never updated or deleted; current unit status is a projection of the
// latest action per unit.
type RestrictedTransaction struct {
	ID           uuid.UUID                `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ItemCode     string                   `gorm:"column:item_code;not null;index" json:"item_code"`
	EmployeeID   *string                  `gorm:"column:employee_id;index" json:"employee_id"`
	SerialUnitID uuid.UUID                `gorm:"column:serial_unit_id;type:uuid;not null;index" json:"serial_unit_id"`
	Action       enums.RestrictedTxAction `gorm:"column:action;not null" json:"action"`
	CreatedAt    time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RestrictedTransaction) TableName() string {
	return "restricted_inventory_transactions"
}
