package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/pkg/enums"
)

// GeneralInventoryItem is a fungible consumable tracked by on-hand quantity.
type GeneralInventoryItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ItemCode       string    `gorm:"column:item_code;not null;uniqueIndex" json:"item_code"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Category       string    `gorm:"column:category" json:"category"`
	Unit           string    `gorm:"column:unit" json:"unit"`
	QuantityOnHand int       `gorm:"column:quantity_on_hand;not null;default:0" json:"quantity_on_hand"`
	ReorderLevel   int       `gorm:"column:reorder_level;not null;default:0" json:"reorder_level"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (GeneralInventoryItem) TableName() string {
	return "general_inventory_items"
}

// GeneralInventoryTransaction is one append-only quantity movement.
type GeneralInventoryTransaction struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ItemCode   string                `gorm:"column:item_code;not null;index" json:"item_code"`
	EmployeeID *string               `gorm:"column:employee_id;index" json:"employee_id"`
	Quantity   int                   `gorm:"column:quantity;not null" json:"quantity"`
	Action     enums.GeneralTxAction `gorm:"column:action;not null" json:"action"`
	Notes      *string               `gorm:"column:notes" json:"notes"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (GeneralInventoryTransaction) TableName() string {
	return "general_inventory_transactions"
}
