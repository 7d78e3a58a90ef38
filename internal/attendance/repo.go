package attendance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
)

// Repository manages persistence for attendance rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByEmployeeDate(ctx context.Context, employeeID string, day types.Date) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Replace(ctx context.Context, record *models.AttendanceRecord) error
	ListByDate(ctx context.Context, day types.Date) ([]models.AttendanceRecord, error)
	ListByRange(ctx context.Context, from, to types.Date) ([]models.AttendanceRecord, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to types.Date) ([]models.AttendanceRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an attendance repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindByEmployeeDate returns nil when no row exists for the pair.
func (r *repository) FindByEmployeeDate(ctx context.Context, employeeID string, day types.Date) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, day).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// Replace writes every column of the row, nulling fields the caller left
// unset. Save is used over Updates so zero-valued pointers persist as NULL.
func (r *repository) Replace(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) ListByDate(ctx context.Context, day types.Date) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Where("date = ?", day).
		Order("employee_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListByRange(ctx context.Context, from, to types.Date) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC, employee_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string, from, to types.Date) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, from, to).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
