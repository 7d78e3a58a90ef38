package employees

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmranwar/guardpost-backend/pkg/db"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
)

// Service manages employee records keyed by their business employee_id,
// plus the warning and document sub-resources hanging off each record.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, employeeID string) (*EmployeeDetail, error)
	Create(ctx context.Context, input CreateInput) (*models.Employee, error)
	Update(ctx context.Context, employeeID string, input UpdateInput) (*models.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	DeleteAll(ctx context.Context) error
	BulkDelete(ctx context.Context, employeeIDs []string) (int, error)

	ListWarnings(ctx context.Context, employeeID string) ([]models.EmployeeWarning, error)
	CreateWarning(ctx context.Context, employeeID string, input WarningInput) (*models.EmployeeWarning, error)
	DeleteWarning(ctx context.Context, employeeID string, warningID uuid.UUID) error

	ListDocuments(ctx context.Context, employeeID string) ([]models.EmployeeDocument, error)
	AddDocument(ctx context.Context, employeeID string, input DocumentInput) (*models.EmployeeDocument, error)
	DeleteDocument(ctx context.Context, employeeID string, docID uuid.UUID) error
}

// ListInput mirrors ListFilter plus the optional total count.
type ListInput struct {
	ListFilter
	WithTotal bool
}

// ListResult carries a page of employees; Total is set only when requested.
type ListResult struct {
	Employees []models.Employee `json:"employees"`
	Total     *int64            `json:"total,omitempty"`
}

// EmployeeDetail is an employee with its sub-resources inlined.
type EmployeeDetail struct {
	models.Employee
	Warnings  []models.EmployeeWarning  `json:"warnings"`
	Documents []models.EmployeeDocument `json:"documents"`
}

// CreateInput accepts both the canonical field names and the legacy aliases
// older clients still send (name / first_name+last_name for full_name,
// employment_status for status, dob for date_of_birth). normalize folds the
// aliases into the canonical fields before anything touches the database.
type CreateInput struct {
	FullName  string `json:"full_name"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Status           string `json:"status"`
	EmploymentStatus string `json:"employment_status"`

	DateOfBirth *types.Date `json:"date_of_birth"`
	DOB         *types.Date `json:"dob"`

	CNIC        string           `json:"cnic"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	Unit        string           `json:"unit"`
	Rank        string           `json:"rank"`
	DeployedAt  string           `json:"deployed_at"`
	JoiningDate *types.Date      `json:"joining_date"`
	Address     string           `json:"address"`
	BasicPay    *decimal.Decimal `json:"basic_pay"`
}

// UpdateInput carries partial updates; nil fields are untouched. The same
// aliases as CreateInput are honored.
type UpdateInput struct {
	FullName         *string          `json:"full_name"`
	Name             *string          `json:"name"`
	Status           *string          `json:"status"`
	EmploymentStatus *string          `json:"employment_status"`
	DateOfBirth      *types.Date      `json:"date_of_birth"`
	DOB              *types.Date      `json:"dob"`
	CNIC             *string          `json:"cnic"`
	Phone            *string          `json:"phone"`
	Email            *string          `json:"email"`
	Unit             *string          `json:"unit"`
	Rank             *string          `json:"rank"`
	DeployedAt       *string          `json:"deployed_at"`
	JoiningDate      *types.Date      `json:"joining_date"`
	Address          *string          `json:"address"`
	BasicPay         *decimal.Decimal `json:"basic_pay"`
}

// WarningInput records a disciplinary note. Date defaults to today.
type WarningInput struct {
	Date     *types.Date `json:"date"`
	Category string      `json:"category"`
	Details  string      `json:"details"`
	IssuedBy string      `json:"issued_by"`
}

// DocumentInput registers file metadata; the blob lives elsewhere.
type DocumentInput struct {
	Filename string `json:"filename" validate:"required"`
	URL      string `json:"url" validate:"required"`
	MimeType string `json:"mime_type"`
}

const defaultStatus = "Active"

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the employee service. The logger is optional.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employee repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateEmployeeID mints a SEC-prefixed business code from the current
// millisecond timestamp in base36 plus a 4-character random suffix.
func generateEmployeeID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		if err != nil {
			suffix[i] = idAlphabet[0]
			continue
		}
		suffix[i] = idAlphabet[n.Int64()]
	}
	return "SEC-" + ts + string(suffix)
}

// resolveFullName folds the name aliases into one canonical full name.
func resolveFullName(fullName, name, first, last string) string {
	if name != "" {
		return name
	}
	if fullName != "" {
		return fullName
	}
	return strings.TrimSpace(first + " " + last)
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	employees, err := s.repo.List(ctx, input.ListFilter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing employees")
	}

	result := &ListResult{Employees: employees}
	if input.WithTotal {
		total, err := s.repo.Count(ctx, input.ListFilter)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting employees")
		}
		result.Total = &total
	}
	return result, nil
}

func (s *service) getEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	employee, err := s.repo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading employee")
	}
	if employee == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
	}
	return employee, nil
}

func (s *service) Get(ctx context.Context, employeeID string) (*EmployeeDetail, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	warnings, err := s.repo.ListWarnings(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading employee warnings")
	}
	docs, err := s.repo.ListDocuments(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading employee documents")
	}

	return &EmployeeDetail{Employee: *employee, Warnings: warnings, Documents: docs}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Employee, error) {
	fullName := resolveFullName(input.FullName, input.Name, input.FirstName, input.LastName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full_name is required")
	}

	status := input.Status
	if status == "" {
		status = input.EmploymentStatus
	}
	if status == "" {
		status = defaultStatus
	}

	dob := input.DateOfBirth
	if dob == nil {
		dob = input.DOB
	}

	employee := &models.Employee{
		EmployeeID:  generateEmployeeID(),
		FullName:    fullName,
		CNIC:        input.CNIC,
		Phone:       input.Phone,
		Email:       input.Email,
		Status:      status,
		Unit:        input.Unit,
		Rank:        input.Rank,
		DeployedAt:  input.DeployedAt,
		DateOfBirth: dob,
		JoiningDate: input.JoiningDate,
		Address:     input.Address,
		BasicPay:    input.BasicPay,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "employee_id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating employee")
	}
	return employee, nil
}

func (s *service) Update(ctx context.Context, employeeID string, input UpdateInput) (*models.Employee, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		employee.FullName = *input.Name
	} else if input.FullName != nil {
		employee.FullName = *input.FullName
	}
	if input.EmploymentStatus != nil {
		employee.Status = *input.EmploymentStatus
	} else if input.Status != nil {
		employee.Status = *input.Status
	}
	if input.DateOfBirth != nil {
		employee.DateOfBirth = input.DateOfBirth
	} else if input.DOB != nil {
		employee.DateOfBirth = input.DOB
	}
	if input.CNIC != nil {
		employee.CNIC = *input.CNIC
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.Unit != nil {
		employee.Unit = *input.Unit
	}
	if input.Rank != nil {
		employee.Rank = *input.Rank
	}
	if input.DeployedAt != nil {
		employee.DeployedAt = *input.DeployedAt
	}
	if input.JoiningDate != nil {
		employee.JoiningDate = input.JoiningDate
	}
	if input.Address != nil {
		employee.Address = *input.Address
	}
	if input.BasicPay != nil {
		employee.BasicPay = input.BasicPay
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating employee")
	}
	return employee, nil
}

func (s *service) Delete(ctx context.Context, employeeID string) error {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := s.repo.DeleteByEmployeeID(ctx, employeeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting employee")
	}
	return nil
}

func (s *service) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting all employees")
	}
	return nil
}

// BulkDelete removes each listed employee independently, counting successes.
// Unknown ids are skipped rather than failing the batch.
func (s *service) BulkDelete(ctx context.Context, employeeIDs []string) (int, error) {
	deleted := 0
	for _, id := range employeeIDs {
		if err := s.Delete(ctx, id); err != nil {
			if s.logg != nil && !pkgerrors.IsNotFound(err) {
				s.logg.Warn(s.logg.WithEmployeeID(ctx, id), "bulk delete skipped employee")
			}
			continue
		}
		deleted++
	}
	return deleted, nil
}

func (s *service) ListWarnings(ctx context.Context, employeeID string) ([]models.EmployeeWarning, error) {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	warnings, err := s.repo.ListWarnings(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing warnings")
	}
	return warnings, nil
}

func (s *service) CreateWarning(ctx context.Context, employeeID string, input WarningInput) (*models.EmployeeWarning, error) {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	date := types.DateOf(time.Now())
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}

	warning := &models.EmployeeWarning{
		EmployeeID: employeeID,
		Date:       date,
		Category:   input.Category,
		Details:    input.Details,
		IssuedBy:   input.IssuedBy,
	}
	if err := s.repo.CreateWarning(ctx, warning); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating warning")
	}
	return warning, nil
}

func (s *service) DeleteWarning(ctx context.Context, employeeID string, warningID uuid.UUID) error {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := s.repo.DeleteWarning(ctx, employeeID, warningID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting warning")
	}
	return nil
}

func (s *service) ListDocuments(ctx context.Context, employeeID string) ([]models.EmployeeDocument, error) {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	docs, err := s.repo.ListDocuments(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing documents")
	}
	return docs, nil
}

func (s *service) AddDocument(ctx context.Context, employeeID string, input DocumentInput) (*models.EmployeeDocument, error) {
	if input.Filename == "" || input.URL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename and url are required")
	}
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	doc := &models.EmployeeDocument{
		EmployeeID: employeeID,
		Filename:   input.Filename,
		URL:        input.URL,
		MimeType:   input.MimeType,
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding document")
	}
	return doc, nil
}

func (s *service) DeleteDocument(ctx context.Context, employeeID string, docID uuid.UUID) error {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := s.repo.DeleteDocument(ctx, employeeID, docID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting document")
	}
	return nil
}
