package generalinv

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/enums"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages fungible stock by on-hand quantity. Issue and return
// move the counter and append a ledger row in one transaction; lost and
// damaged are bookkeeping only; adjust sets the absolute quantity.
type Service interface {
	ListItems(ctx context.Context) ([]models.GeneralInventoryItem, error)
	GetItem(ctx context.Context, itemCode string) (*models.GeneralInventoryItem, error)
	CreateItem(ctx context.Context, input ItemInput) (*models.GeneralInventoryItem, error)
	UpdateItem(ctx context.Context, itemCode string, input ItemUpdateInput) (*models.GeneralInventoryItem, error)
	DeleteItem(ctx context.Context, itemCode string) error
	ListCategories(ctx context.Context) ([]string, error)

	Issue(ctx context.Context, itemCode string, input MovementInput) (*models.GeneralInventoryItem, error)
	Return(ctx context.Context, itemCode string, input MovementInput) (*models.GeneralInventoryItem, error)
	ReportLost(ctx context.Context, itemCode string, input MovementInput) (*models.GeneralInventoryItem, error)
	ReportDamaged(ctx context.Context, itemCode string, input MovementInput) (*models.GeneralInventoryItem, error)
	Adjust(ctx context.Context, itemCode string, input AdjustInput) (*models.GeneralInventoryItem, error)

	ListTransactions(ctx context.Context, filter TxFilter) ([]models.GeneralInventoryTransaction, error)
}

// ItemInput creates a stock item.
type ItemInput struct {
	ItemCode       string `json:"item_code" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Category       string `json:"category"`
	Unit           string `json:"unit"`
	QuantityOnHand int    `json:"quantity_on_hand"`
	ReorderLevel   int    `json:"reorder_level"`
}

// ItemUpdateInput carries partial item updates; nil fields are untouched.
// Quantity is deliberately absent, stock moves only through the ledger.
type ItemUpdateInput struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Unit         *string `json:"unit"`
	ReorderLevel *int    `json:"reorder_level"`
}

// MovementInput records a quantity movement against an employee.
type MovementInput struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	Notes      *string `json:"notes"`
}

// AdjustInput sets the absolute on-hand quantity after a stock count.
type AdjustInput struct {
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes"`
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the general inventory service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("general inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListItems(ctx context.Context) ([]models.GeneralInventoryItem, error) {
	return s.repo.ListItems(ctx)
}

func (s *service) GetItem(ctx context.Context, itemCode string) (*models.GeneralInventoryItem, error) {
	item, err := s.repo.GetItemByCode(ctx, itemCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return item, nil
}

func (s *service) CreateItem(ctx context.Context, input ItemInput) (*models.GeneralInventoryItem, error) {
	if input.ItemCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_code is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.QuantityOnHand < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_on_hand must not be negative")
	}

	item := &models.GeneralInventoryItem{
		ItemCode:       input.ItemCode,
		Name:           input.Name,
		Category:       input.Category,
		Unit:           input.Unit,
		QuantityOnHand: input.QuantityOnHand,
		ReorderLevel:   input.ReorderLevel,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item_code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating inventory item")
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, itemCode string, input ItemUpdateInput) (*models.GeneralInventoryItem, error) {
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
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.ReorderLevel != nil {
		item.ReorderLevel = *input.ReorderLevel
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating inventory item")
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, itemCode string) error {
	if _, err := s.GetItem(ctx, itemCode); err != nil {
		return err
	}
	if err := s.repo.DeleteItemByCode(ctx, itemCode); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting inventory item")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return categories, nil
}

func validateMovement(input MovementInput) error {
	if input.EmployeeID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "employee_id is required")
	}
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return nil
}

// move applies a quantity delta and appends the ledger row in one
// transaction. delta 0 records the movement without touching stock.
func (s *service) move(ctx context.Context, itemCode string, action enums.GeneralTxAction, employeeID *string, quantity, delta int, notes *string) (*models.GeneralInventoryItem, error) {
	var updated *models.GeneralInventoryItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.GetItemByCode(ctx, itemCode)
		if err != nil {
			return err
		}
		if item == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}

		if delta != 0 {
			item.QuantityOnHand += delta
			if err := repo.UpdateItem(ctx, item); err != nil {
				return err
			}
		}

		if err := repo.AppendTransaction(ctx, &models.GeneralInventoryTransaction{
			ItemCode:   itemCode,
			EmployeeID: employeeID,
			Quantity:   quantity,
			Action:     action,
			Notes:      notes,
		}); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording inventory movement")
	}
	return updated, nil
}

func (s *service) Issue(ctx context.Context, itemCode string, input MovementInput) (*models.GeneralInventoryItem, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}
	return s.move(ctx, itemCode, enums.GeneralTxActionIssue, &input.EmployeeID, input.Quantity, -input.Quantity, input.Notes)
}

func (s *service) Return(ctx context.Context, itemCode string, input MovementInput) (*models.GeneralInventoryItem, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}
	return s.move(ctx, itemCode, enums.GeneralTxActionReturn, &input.EmployeeID, input.Quantity, input.Quantity, input.Notes)
}

func (s *service) ReportLost(ctx context.Context, itemCode string, input MovementInput) (*models.GeneralInventoryItem, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}
	return s.move(ctx, itemCode, enums.GeneralTxActionLost, &input.EmployeeID, input.Quantity, 0, input.Notes)
}

func (s *service) ReportDamaged(ctx context.Context, itemCode string, input MovementInput) (*models.GeneralInventoryItem, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}
	return s.move(ctx, itemCode, enums.GeneralTxActionDamaged, &input.EmployeeID, input.Quantity, 0, input.Notes)
}

// Adjust overwrites the on-hand count; the ledger row stores the new
// absolute quantity, not a delta.
func (s *service) Adjust(ctx context.Context, itemCode string, input AdjustInput) (*models.GeneralInventoryItem, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	var updated *models.GeneralInventoryItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.GetItemByCode(ctx, itemCode)
		if err != nil {
			return err
		}
		if item == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}

		item.QuantityOnHand = input.Quantity
		if err := repo.UpdateItem(ctx, item); err != nil {
			return err
		}

		if err := repo.AppendTransaction(ctx, &models.GeneralInventoryTransaction{
			ItemCode: itemCode,
			Quantity: input.Quantity,
			Action:   enums.GeneralTxActionAdjust,
			Notes:    input.Notes,
		}); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adjusting inventory item")
	}
	return updated, nil
}

func (s *service) ListTransactions(ctx context.Context, filter TxFilter) ([]models.GeneralInventoryTransaction, error) {
	txs, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing inventory transactions")
	}
	return txs, nil
}
