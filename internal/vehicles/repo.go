package vehicles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/listing"
)

// Repository persists fleet vehicles and their document and image metadata.
// Single-row getters return (nil, nil) when no row matches.
type Repository interface {
	List(ctx context.Context, params listing.Params) ([]models.Vehicle, error)
	GetByVehicleID(ctx context.Context, vehicleID string) (*models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, vehicle *models.Vehicle) error
	DeleteByVehicleID(ctx context.Context, vehicleID string) error

	ListDocuments(ctx context.Context, vehicleID string) ([]models.VehicleDocument, error)
	CreateDocument(ctx context.Context, doc *models.VehicleDocument) error
	DeleteDocument(ctx context.Context, vehicleID string, docID uuid.UUID) error

	ListImages(ctx context.Context, vehicleID string) ([]models.VehicleImage, error)
	CreateImage(ctx context.Context, image *models.VehicleImage) error
	DeleteImage(ctx context.Context, vehicleID string, imageID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a vehicle repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, params listing.Params) ([]models.Vehicle, error) {
	params = params.Normalize()

	var vehicles []models.Vehicle
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *repository) GetByVehicleID(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "vehicle_id = ?", vehicleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *repository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *repository) DeleteByVehicleID(ctx context.Context, vehicleID string) error {
	return r.db.WithContext(ctx).Delete(&models.Vehicle{}, "vehicle_id = ?", vehicleID).Error
}

func (r *repository) ListDocuments(ctx context.Context, vehicleID string) ([]models.VehicleDocument, error) {
	var docs []models.VehicleDocument
	if err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repository) CreateDocument(ctx context.Context, doc *models.VehicleDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) DeleteDocument(ctx context.Context, vehicleID string, docID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Delete(&models.VehicleDocument{}, "id = ?", docID).Error
}

func (r *repository) ListImages(ctx context.Context, vehicleID string) ([]models.VehicleImage, error) {
	var images []models.VehicleImage
	if err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *repository) CreateImage(ctx context.Context, image *models.VehicleImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *repository) DeleteImage(ctx context.Context, vehicleID string, imageID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Delete(&models.VehicleImage{}, "id = ?", imageID).Error
}
