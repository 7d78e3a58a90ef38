package restrictedinv

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
)

// TxFilter narrows custody ledger listings; both filters are equality.
type TxFilter struct {
	ItemCode   *string
	EmployeeID *string
}

// Repository manages restricted items, their serialized units, and the
// append-only custody ledger. Single-row getters return (nil, nil) when
// no row matches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListItems(ctx context.Context) ([]models.RestrictedInventoryItem, error)
	GetItemByCode(ctx context.Context, itemCode string) (*models.RestrictedInventoryItem, error)
	CreateItem(ctx context.Context, item *models.RestrictedInventoryItem) error
	UpdateItem(ctx context.Context, item *models.RestrictedInventoryItem) error
	DeleteItemByCode(ctx context.Context, itemCode string) error

	ListSerialUnits(ctx context.Context, itemCode string) ([]models.SerialUnit, error)
	GetSerialUnit(ctx context.Context, id uuid.UUID) (*models.SerialUnit, error)
	CreateSerialUnit(ctx context.Context, unit *models.SerialUnit) error
	UpdateSerialUnit(ctx context.Context, unit *models.SerialUnit) error

	AppendTransaction(ctx context.Context, tx *models.RestrictedTransaction) error
	ListTransactions(ctx context.Context, filter TxFilter) ([]models.RestrictedTransaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a restricted inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListItems(ctx context.Context) ([]models.RestrictedInventoryItem, error) {
	var items []models.RestrictedInventoryItem
	if err := r.db.WithContext(ctx).Order("item_code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetItemByCode(ctx context.Context, itemCode string) (*models.RestrictedInventoryItem, error) {
	var item models.RestrictedInventoryItem
	err := r.db.WithContext(ctx).First(&item, "item_code = ?", itemCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.RestrictedInventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) UpdateItem(ctx context.Context, item *models.RestrictedInventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteItemByCode(ctx context.Context, itemCode string) error {
	return r.db.WithContext(ctx).Delete(&models.RestrictedInventoryItem{}, "item_code = ?", itemCode).Error
}

func (r *repository) ListSerialUnits(ctx context.Context, itemCode string) ([]models.SerialUnit, error) {
	var units []models.SerialUnit
	if err := r.db.WithContext(ctx).
		Where("item_code = ?", itemCode).
		Order("serial_number ASC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *repository) GetSerialUnit(ctx context.Context, id uuid.UUID) (*models.SerialUnit, error) {
	var unit models.SerialUnit
	err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *repository) CreateSerialUnit(ctx context.Context, unit *models.SerialUnit) error {
	if unit.ID == uuid.Nil {
		unit.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *repository) UpdateSerialUnit(ctx context.Context, unit *models.SerialUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *repository) AppendTransaction(ctx context.Context, tx *models.RestrictedTransaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

// ListTransactions returns ledger rows newest-first. The id tiebreak
// keeps the order deterministic for rows sharing a timestamp.
func (r *repository) ListTransactions(ctx context.Context, filter TxFilter) ([]models.RestrictedTransaction, error) {
	query := r.db.WithContext(ctx).Model(&models.RestrictedTransaction{})
	if filter.ItemCode != nil {
		query = query.Where("item_code = ?", *filter.ItemCode)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	var txs []models.RestrictedTransaction
	if err := query.Order("created_at DESC, id DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
