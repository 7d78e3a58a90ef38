package generalinv

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
)

// TxFilter narrows quantity ledger listings; both filters are equality.
type TxFilter struct {
	ItemCode   *string
	EmployeeID *string
	Limit      int
}

// Repository persists fungible inventory items and their append-only
// quantity ledger. Single-row getters return (nil, nil) when no row matches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListItems(ctx context.Context) ([]models.GeneralInventoryItem, error)
	GetItemByCode(ctx context.Context, itemCode string) (*models.GeneralInventoryItem, error)
	CreateItem(ctx context.Context, item *models.GeneralInventoryItem) error
	UpdateItem(ctx context.Context, item *models.GeneralInventoryItem) error
	DeleteItemByCode(ctx context.Context, itemCode string) error
	ListCategories(ctx context.Context) ([]string, error)

	AppendTransaction(ctx context.Context, tx *models.GeneralInventoryTransaction) error
	ListTransactions(ctx context.Context, filter TxFilter) ([]models.GeneralInventoryTransaction, error)
}

const defaultTxLimit = 100

type repository struct {
	db *gorm.DB
}

// NewRepository returns a general inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListItems(ctx context.Context) ([]models.GeneralInventoryItem, error) {
	var items []models.GeneralInventoryItem
	if err := r.db.WithContext(ctx).Order("item_code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetItemByCode(ctx context.Context, itemCode string) (*models.GeneralInventoryItem, error) {
	var item models.GeneralInventoryItem
	err := r.db.WithContext(ctx).First(&item, "item_code = ?", itemCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.GeneralInventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) UpdateItem(ctx context.Context, item *models.GeneralInventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteItemByCode(ctx context.Context, itemCode string) error {
	return r.db.WithContext(ctx).Delete(&models.GeneralInventoryItem{}, "item_code = ?", itemCode).Error
}

func (r *repository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.GeneralInventoryItem{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) AppendTransaction(ctx context.Context, tx *models.GeneralInventoryTransaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

// ListTransactions returns ledger rows newest-first.
func (r *repository) ListTransactions(ctx context.Context, filter TxFilter) ([]models.GeneralInventoryTransaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTxLimit
	}

	query := r.db.WithContext(ctx).Model(&models.GeneralInventoryTransaction{})
	if filter.ItemCode != nil {
		query = query.Where("item_code = ?", *filter.ItemCode)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	var txs []models.GeneralInventoryTransaction
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
