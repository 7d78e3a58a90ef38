package restrictedinv

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/enums"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service tracks custody of serialized restricted equipment. Issue and
// return are the only operations that touch unit status, and each one
// runs its status check and writes inside a single transaction.
type Service interface {
	ListItems(ctx context.Context) ([]models.RestrictedInventoryItem, error)
	GetItem(ctx context.Context, itemCode string) (*models.RestrictedInventoryItem, error)
	CreateItem(ctx context.Context, input ItemInput) (*models.RestrictedInventoryItem, error)
	UpdateItem(ctx context.Context, itemCode string, input ItemUpdateInput) (*models.RestrictedInventoryItem, error)
	DeleteItem(ctx context.Context, itemCode string) error

	ListSerialUnits(ctx context.Context, itemCode string) ([]models.SerialUnit, error)
	CreateSerialUnit(ctx context.Context, itemCode string, input SerialUnitInput) (*models.SerialUnit, error)
	IssueSerial(ctx context.Context, unitID uuid.UUID, employeeID string) (*models.SerialUnit, error)
	ReturnSerial(ctx context.Context, unitID uuid.UUID) (*models.SerialUnit, error)

	ListTransactions(ctx context.Context, filter TxFilter) ([]models.RestrictedTransaction, error)
}

// ItemInput creates a restricted item type.
type ItemInput struct {
	ItemCode        string `json:"item_code" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Category        string `json:"category"`
	LicenseRequired bool   `json:"license_required"`
	Notes           string `json:"notes"`
}

// ItemUpdateInput carries partial item updates; nil fields are untouched.
type ItemUpdateInput struct {
	Name            *string `json:"name"`
	Category        *string `json:"category"`
	LicenseRequired *bool   `json:"license_required"`
	Notes           *string `json:"notes"`
}

// SerialUnitInput registers one physical unit under an item.
type SerialUnitInput struct {
	SerialNumber string `json:"serial_number" validate:"required"`
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the restricted inventory service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("restricted inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListItems(ctx context.Context) ([]models.RestrictedInventoryItem, error) {
	return s.repo.ListItems(ctx)
}

func (s *service) GetItem(ctx context.Context, itemCode string) (*models.RestrictedInventoryItem, error) {
	item, err := s.repo.GetItemByCode(ctx, itemCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading restricted item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restricted item not found")
	}
	return item, nil
}

func (s *service) CreateItem(ctx context.Context, input ItemInput) (*models.RestrictedInventoryItem, error) {
	if input.ItemCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_code is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	item := &models.RestrictedInventoryItem{
		ItemCode:        input.ItemCode,
		Name:            input.Name,
		Category:        input.Category,
		LicenseRequired: input.LicenseRequired,
		Notes:           input.Notes,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item_code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating restricted item")
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, itemCode string, input ItemUpdateInput) (*models.RestrictedInventoryItem, error) {
	item, err := s.GetItem(ctx, itemCode)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.LicenseRequired != nil {
		item.LicenseRequired = *input.LicenseRequired
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating restricted item")
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, itemCode string) error {
	if _, err := s.GetItem(ctx, itemCode); err != nil {
		return err
	}
	if err := s.repo.DeleteItemByCode(ctx, itemCode); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting restricted item")
	}
	return nil
}

func (s *service) ListSerialUnits(ctx context.Context, itemCode string) ([]models.SerialUnit, error) {
	return s.repo.ListSerialUnits(ctx, itemCode)
}

func (s *service) CreateSerialUnit(ctx context.Context, itemCode string, input SerialUnitInput) (*models.SerialUnit, error) {
	if input.SerialNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "serial_number is required")
	}
	if _, err := s.GetItem(ctx, itemCode); err != nil {
		return nil, err
	}

	unit := &models.SerialUnit{
		ItemCode:     itemCode,
		SerialNumber: input.SerialNumber,
		Status:       enums.SerialUnitStatusInStock,
	}
	if err := s.repo.CreateSerialUnit(ctx, unit); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "serial_number already exists for item")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating serial unit")
	}
	return unit, nil
}

// IssueSerial hands the unit to an employee and appends the issue ledger
// row in the same transaction. Issuing an already-issued unit is a state
// conflict; the prior custodian must return it first.
func (s *service) IssueSerial(ctx context.Context, unitID uuid.UUID, employeeID string) (*models.SerialUnit, error) {
	if employeeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee_id is required")
	}

	var updated *models.SerialUnit
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		unit, err := repo.GetSerialUnit(ctx, unitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "serial unit not found")
		}
		if unit.Status == enums.SerialUnitStatusIssued {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "serial unit already issued")
		}

		unit.Status = enums.SerialUnitStatusIssued
		unit.IssuedToEmployeeID = &employeeID
		if err := repo.UpdateSerialUnit(ctx, unit); err != nil {
			return err
		}

		if err := repo.AppendTransaction(ctx, &models.RestrictedTransaction{
			ItemCode:     unit.ItemCode,
			EmployeeID:   &employeeID,
			SerialUnitID: unit.ID,
			Action:       enums.RestrictedTxActionIssue,
		}); err != nil {
			return err
		}

		updated = unit
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issuing serial unit")
	}
	return updated, nil
}

// ReturnSerial takes the unit back into stock. The ledger row keeps the
// outgoing custodian, captured before the unit is cleared.
func (s *service) ReturnSerial(ctx context.Context, unitID uuid.UUID) (*models.SerialUnit, error) {
	var updated *models.SerialUnit
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		unit, err := repo.GetSerialUnit(ctx, unitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "serial unit not found")
		}
		if unit.Status != enums.SerialUnitStatusIssued {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "serial unit is not issued")
		}

		custodian := unit.IssuedToEmployeeID

		unit.Status = enums.SerialUnitStatusInStock
		unit.IssuedToEmployeeID = nil
		if err := repo.UpdateSerialUnit(ctx, unit); err != nil {
			return err
		}

		if err := repo.AppendTransaction(ctx, &models.RestrictedTransaction{
			ItemCode:     unit.ItemCode,
			EmployeeID:   custodian,
			SerialUnitID: unit.ID,
			Action:       enums.RestrictedTxActionReturn,
		}); err != nil {
			return err
		}

		updated = unit
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "returning serial unit")
	}
	return updated, nil
}

func (s *service) ListTransactions(ctx context.Context, filter TxFilter) ([]models.RestrictedTransaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}
