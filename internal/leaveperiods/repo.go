package leaveperiods

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
)

// ListFilter narrows leave period listings.
type ListFilter struct {
	EmployeeID *string
	ActiveOn   *types.Date
}

// Repository manages persistence for leave periods. Single-row finders
// return (nil, nil) when no row matches so callers can branch without
// unwrapping gorm errors.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, period *models.LeavePeriod) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.LeavePeriod, error)
	List(ctx context.Context, filter ListFilter) ([]models.LeavePeriod, error)
	Update(ctx context.Context, period *models.LeavePeriod) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindEndingOn(ctx context.Context, employeeID, leaveType string, day types.Date) (*models.LeavePeriod, error)
	FindStartingOn(ctx context.Context, employeeID, leaveType string, day types.Date) (*models.LeavePeriod, error)
	FindExactDay(ctx context.Context, employeeID string, day types.Date) (*models.LeavePeriod, error)
	ListEndingBetween(ctx context.Context, from, to types.Date) ([]models.LeavePeriod, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a leave period repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, period *models.LeavePeriod) error {
	if period.ID == uuid.Nil {
		period.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.LeavePeriod, error) {
	var period models.LeavePeriod
	err := r.db.WithContext(ctx).First(&period, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.LeavePeriod, error) {
	query := r.db.WithContext(ctx).Model(&models.LeavePeriod{})
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ActiveOn != nil {
		query = query.Where("from_date <= ? AND to_date >= ?", *filter.ActiveOn, *filter.ActiveOn)
	}

	var periods []models.LeavePeriod
	if err := query.Order("from_date DESC").Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *repository) Update(ctx context.Context, period *models.LeavePeriod) error {
	return r.db.WithContext(ctx).Save(period).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LeavePeriod{}, "id = ?", id).Error
}

func (r *repository) FindEndingOn(ctx context.Context, employeeID, leaveType string, day types.Date) (*models.LeavePeriod, error) {
	return r.findOne(ctx, "employee_id = ? AND to_date = ? AND leave_type = ?", employeeID, day, leaveType)
}

func (r *repository) FindStartingOn(ctx context.Context, employeeID, leaveType string, day types.Date) (*models.LeavePeriod, error) {
	return r.findOne(ctx, "employee_id = ? AND from_date = ? AND leave_type = ?", employeeID, day, leaveType)
}

// FindExactDay deliberately ignores leave_type: the single-day guard in
// the reconciler treats any existing from=to=day period as already done.
func (r *repository) FindExactDay(ctx context.Context, employeeID string, day types.Date) (*models.LeavePeriod, error) {
	return r.findOne(ctx, "employee_id = ? AND from_date = ? AND to_date = ?", employeeID, day, day)
}

func (r *repository) ListEndingBetween(ctx context.Context, from, to types.Date) ([]models.LeavePeriod, error) {
	var periods []models.LeavePeriod
	if err := r.db.WithContext(ctx).
		Where("to_date BETWEEN ? AND ?", from, to).
		Order("to_date ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *repository) findOne(ctx context.Context, cond string, args ...any) (*models.LeavePeriod, error) {
	var period models.LeavePeriod
	err := r.db.WithContext(ctx).Where(cond, args...).First(&period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &period, nil
}
