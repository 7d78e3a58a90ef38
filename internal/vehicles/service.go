package vehicles

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/pkg/db"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/listing"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
)

// Service manages the vehicle fleet keyed by business vehicle_id.
type Service interface {
	List(ctx context.Context, params listing.Params) ([]models.Vehicle, error)
	Get(ctx context.Context, vehicleID string) (*VehicleDetail, error)
	Create(ctx context.Context, input VehicleInput) (*models.Vehicle, error)
	Update(ctx context.Context, vehicleID string, input VehicleUpdateInput) (*models.Vehicle, error)
	Delete(ctx context.Context, vehicleID string) error
	ImportBulk(ctx context.Context, inputs []VehicleInput) (int, error)

	ListDocuments(ctx context.Context, vehicleID string) ([]models.VehicleDocument, error)
	AddDocument(ctx context.Context, vehicleID string, input FileInput) (*models.VehicleDocument, error)
	DeleteDocument(ctx context.Context, vehicleID string, docID uuid.UUID) error

	ListImages(ctx context.Context, vehicleID string) ([]models.VehicleImage, error)
	AddImage(ctx context.Context, vehicleID string, input FileInput) (*models.VehicleImage, error)
	DeleteImage(ctx context.Context, vehicleID string, imageID uuid.UUID) error
}

// VehicleDetail is a vehicle with its sub-resources inlined.
type VehicleDetail struct {
	models.Vehicle
	Documents []models.VehicleDocument `json:"documents"`
	Images    []models.VehicleImage    `json:"images"`
}

// VehicleInput creates a fleet record.
type VehicleInput struct {
	VehicleID          string      `json:"vehicle_id" validate:"required"`
	Make               string      `json:"make"`
	Model              string      `json:"model"`
	Year               int         `json:"year"`
	PlateNumber        string      `json:"plate_number"`
	Status             string      `json:"status"`
	AssignedEmployeeID *string     `json:"assigned_employee_id"`
	RegistrationExpiry *types.Date `json:"registration_expiry"`
}

// VehicleUpdateInput carries partial updates; nil fields are untouched.
type VehicleUpdateInput struct {
	Make               *string     `json:"make"`
	Model              *string     `json:"model"`
	Year               *int        `json:"year"`
	PlateNumber        *string     `json:"plate_number"`
	Status             *string     `json:"status"`
	AssignedEmployeeID *string     `json:"assigned_employee_id"`
	RegistrationExpiry *types.Date `json:"registration_expiry"`
}

// FileInput registers document or image metadata; the blob lives elsewhere.
type FileInput struct {
	Filename string `json:"filename" validate:"required"`
	URL      string `json:"url" validate:"required"`
	MimeType string `json:"mime_type"`
}

const defaultVehicleStatus = "active"

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the vehicle service. The logger is optional.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context, params listing.Params) ([]models.Vehicle, error) {
	vehicles, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vehicles")
	}
	return vehicles, nil
}

func (s *service) getVehicle(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehicle")
	}
	if vehicle == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
	}
	return vehicle, nil
}

func (s *service) Get(ctx context.Context, vehicleID string) (*VehicleDetail, error) {
	vehicle, err := s.getVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	docs, err := s.repo.ListDocuments(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehicle documents")
	}
	images, err := s.repo.ListImages(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehicle images")
	}

	return &VehicleDetail{Vehicle: *vehicle, Documents: docs, Images: images}, nil
}

func (s *service) Create(ctx context.Context, input VehicleInput) (*models.Vehicle, error) {
	if input.VehicleID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle_id is required")
	}

	status := input.Status
	if status == "" {
		status = defaultVehicleStatus
	}

	vehicle := &models.Vehicle{
		VehicleID:          input.VehicleID,
		Make:               input.Make,
		Model:              input.Model,
		Year:               input.Year,
		PlateNumber:        input.PlateNumber,
		Status:             status,
		AssignedEmployeeID: input.AssignedEmployeeID,
		RegistrationExpiry: input.RegistrationExpiry,
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vehicle_id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating vehicle")
	}
	return vehicle, nil
}

func (s *service) Update(ctx context.Context, vehicleID string, input VehicleUpdateInput) (*models.Vehicle, error) {
	vehicle, err := s.getVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.PlateNumber != nil {
		vehicle.PlateNumber = *input.PlateNumber
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}
	if input.AssignedEmployeeID != nil {
		vehicle.AssignedEmployeeID = input.AssignedEmployeeID
	}
	if input.RegistrationExpiry != nil {
		vehicle.RegistrationExpiry = input.RegistrationExpiry
	}

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating vehicle")
	}
	return vehicle, nil
}

func (s *service) Delete(ctx context.Context, vehicleID string) error {
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return err
	}
	if err := s.repo.DeleteByVehicleID(ctx, vehicleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting vehicle")
	}
	return nil
}

// ImportBulk inserts each row independently and counts successes. Bad rows
// (missing vehicle_id, duplicate code) are skipped, not fatal; fleet imports
// come from spreadsheets and a partial load beats no load.
func (s *service) ImportBulk(ctx context.Context, inputs []VehicleInput) (int, error) {
	imported := 0
	for _, input := range inputs {
		if _, err := s.Create(ctx, input); err != nil {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "vehicle_id", input.VehicleID), "bulk import skipped vehicle")
			}
			continue
		}
		imported++
	}
	return imported, nil
}

func (s *service) ListDocuments(ctx context.Context, vehicleID string) ([]models.VehicleDocument, error) {
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	docs, err := s.repo.ListDocuments(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vehicle documents")
	}
	return docs, nil
}

func (s *service) AddDocument(ctx context.Context, vehicleID string, input FileInput) (*models.VehicleDocument, error) {
	if input.Filename == "" || input.URL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename and url are required")
	}
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	doc := &models.VehicleDocument{
		VehicleID: vehicleID,
		Filename:  input.Filename,
		URL:       input.URL,
		MimeType:  input.MimeType,
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding vehicle document")
	}
	return doc, nil
}

func (s *service) DeleteDocument(ctx context.Context, vehicleID string, docID uuid.UUID) error {
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return err
	}
	if err := s.repo.DeleteDocument(ctx, vehicleID, docID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting vehicle document")
	}
	return nil
}

func (s *service) ListImages(ctx context.Context, vehicleID string) ([]models.VehicleImage, error) {
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	images, err := s.repo.ListImages(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vehicle images")
	}
	return images, nil
}

func (s *service) AddImage(ctx context.Context, vehicleID string, input FileInput) (*models.VehicleImage, error) {
	if input.Filename == "" || input.URL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename and url are required")
	}
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	image := &models.VehicleImage{
		VehicleID: vehicleID,
		Filename:  input.Filename,
		URL:       input.URL,
		MimeType:  input.MimeType,
	}
	if err := s.repo.CreateImage(ctx, image); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding vehicle image")
	}
	return image, nil
}

func (s *service) DeleteImage(ctx context.Context, vehicleID string, imageID uuid.UUID) error {
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return err
	}
	if err := s.repo.DeleteImage(ctx, vehicleID, imageID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting vehicle image")
	}
	return nil
}
