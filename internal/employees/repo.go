package employees

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/listing"
)

// ListFilter narrows employee listings. Search matches name, business id,
// CNIC, or phone with a substring scan; the rest are equality filters.
type ListFilter struct {
	Status     *string
	Unit       *string
	Rank       *string
	DeployedAt *string
	Search     *string

	listing.Params
}

// Repository persists employees and their warning and document
// sub-resources. Single-row getters return (nil, nil) when no row matches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	List(ctx context.Context, filter ListFilter) ([]models.Employee, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
	DeleteAll(ctx context.Context) error

	ListWarnings(ctx context.Context, employeeID string) ([]models.EmployeeWarning, error)
	CreateWarning(ctx context.Context, warning *models.EmployeeWarning) error
	DeleteWarning(ctx context.Context, employeeID string, warningID uuid.UUID) error

	ListDocuments(ctx context.Context, employeeID string) ([]models.EmployeeDocument, error)
	CreateDocument(ctx context.Context, doc *models.EmployeeDocument) error
	DeleteDocument(ctx context.Context, employeeID string, docID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an employee repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) applyFilter(query *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Unit != nil {
		query = query.Where("unit = ?", *filter.Unit)
	}
	if filter.Rank != nil {
		query = query.Where("rank = ?", *filter.Rank)
	}
	if filter.DeployedAt != nil {
		query = query.Where("deployed_at = ?", *filter.DeployedAt)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where(
			"full_name LIKE ? OR employee_id LIKE ? OR cnic LIKE ? OR phone LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	return query
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Employee, error) {
	params := filter.Params.Normalize()

	var employees []models.Employee
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Employee{}), filter)
	if err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	var total int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Employee{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).First(&employee, "employee_id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *repository) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *repository) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).Delete(&models.Employee{}, "employee_id = ?", employeeID).Error
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Employee{}).Error
}

func (r *repository) ListWarnings(ctx context.Context, employeeID string) ([]models.EmployeeWarning, error) {
	var warnings []models.EmployeeWarning
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&warnings).Error; err != nil {
		return nil, err
	}
	return warnings, nil
}

func (r *repository) CreateWarning(ctx context.Context, warning *models.EmployeeWarning) error {
	if warning.ID == uuid.Nil {
		warning.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(warning).Error
}

func (r *repository) DeleteWarning(ctx context.Context, employeeID string, warningID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&models.EmployeeWarning{}, "id = ?", warningID).Error
}

func (r *repository) ListDocuments(ctx context.Context, employeeID string) ([]models.EmployeeDocument, error) {
	var docs []models.EmployeeDocument
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repository) CreateDocument(ctx context.Context, doc *models.EmployeeDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) DeleteDocument(ctx context.Context, employeeID string, docID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&models.EmployeeDocument{}, "id = ?", docID).Error
}
