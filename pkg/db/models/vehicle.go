package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/pkg/db/types"
)

// Vehicle is a fleet record keyed by the business vehicle code.
type Vehicle struct {
	ID                 uuid.UUID   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	VehicleID          string      `gorm:"column:vehicle_id;not null;uniqueIndex" json:"vehicle_id"`
	Make               string      `gorm:"column:make" json:"make"`
	Model              string      `gorm:"column:model" json:"model"`
	Year               int         `gorm:"column:year" json:"year"`
	PlateNumber        string      `gorm:"column:plate_number" json:"plate_number"`
	Status             string      `gorm:"column:status;not null;default:active" json:"status"`
	AssignedEmployeeID *string     `gorm:"column:assigned_employee_id" json:"assigned_employee_id"`
	RegistrationExpiry *types.Date `gorm:"column:registration_expiry" json:"registration_expiry"`
	CreatedAt          time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// VehicleDocument stores document metadata attached to a vehicle.
type VehicleDocument struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	VehicleID string    `gorm:"column:vehicle_id;not null;index" json:"vehicle_id"`
	Filename  string    `gorm:"column:filename;not null" json:"filename"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	MimeType  string    `gorm:"column:mime_type" json:"mime_type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (VehicleDocument) TableName() string {
	return "vehicle_documents"
}

// VehicleImage stores image metadata attached to a vehicle.
type VehicleImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	VehicleID string    `gorm:"column:vehicle_id;not null;index" json:"vehicle_id"`
	Filename  string    `gorm:"column:filename;not null" json:"filename"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	MimeType  string    `gorm:"column:mime_type" json:"mime_type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (VehicleImage) TableName() string {
	return "vehicle_images"
}
