package payroll

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
)

// ListFilter narrows payroll sheet listings; both filters are equality.
type ListFilter struct {
	Month      *string
	EmployeeID *string
}

// Repository persists payroll sheets, one per (month, employee).
// Single-row getters return (nil, nil) when no row matches.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]models.PayrollSheet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PayrollSheet, error)
	GetByMonthEmployee(ctx context.Context, month, employeeID string) (*models.PayrollSheet, error)
	Create(ctx context.Context, sheet *models.PayrollSheet) error
	Update(ctx context.Context, sheet *models.PayrollSheet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a payroll repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.PayrollSheet, error) {
	query := r.db.WithContext(ctx).Model(&models.PayrollSheet{})
	if filter.Month != nil {
		query = query.Where("month = ?", *filter.Month)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	var sheets []models.PayrollSheet
	if err := query.Order("month DESC, employee_id ASC").Find(&sheets).Error; err != nil {
		return nil, err
	}
	return sheets, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.PayrollSheet, error) {
	var sheet models.PayrollSheet
	err := r.db.WithContext(ctx).First(&sheet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *repository) GetByMonthEmployee(ctx context.Context, month, employeeID string) (*models.PayrollSheet, error) {
	var sheet models.PayrollSheet
	err := r.db.WithContext(ctx).
		First(&sheet, "month = ? AND employee_id = ?", month, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *repository) Create(ctx context.Context, sheet *models.PayrollSheet) error {
	if sheet.ID == uuid.Nil {
		sheet.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(sheet).Error
}

func (r *repository) Update(ctx context.Context, sheet *models.PayrollSheet) error {
	return r.db.WithContext(ctx).Save(sheet).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PayrollSheet{}, "id = ?", id).Error
}
