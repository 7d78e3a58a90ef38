package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmranwar/guardpost-backend/pkg/db"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/enums"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

// Service stores externally computed payroll sheets, one per (month,
// employee). A finalized sheet is immutable; computation itself happens
// outside this system.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.PayrollSheet, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PayrollSheet, error)
	Create(ctx context.Context, input SheetInput) (*models.PayrollSheet, error)
	Update(ctx context.Context, id uuid.UUID, input SheetUpdateInput) (*models.PayrollSheet, error)
	Finalize(ctx context.Context, id uuid.UUID) (*models.PayrollSheet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MonthSummary(ctx context.Context, month string) (*MonthSummary, error)
}

// SheetInput creates a sheet with externally supplied figures.
type SheetInput struct {
	Month          string           `json:"month" validate:"required"`
	EmployeeID     string           `json:"employee_id" validate:"required"`
	BasicPay       decimal.Decimal  `json:"basic_pay"`
	Allowances     decimal.Decimal  `json:"allowances"`
	OvertimeAmount decimal.Decimal  `json:"overtime_amount"`
	Deductions     decimal.Decimal  `json:"deductions"`
	FineAmount     decimal.Decimal  `json:"fine_amount"`
	NetPay         *decimal.Decimal `json:"net_pay"`
}

// SheetUpdateInput carries partial figure updates; nil fields are untouched.
type SheetUpdateInput struct {
	BasicPay       *decimal.Decimal `json:"basic_pay"`
	Allowances     *decimal.Decimal `json:"allowances"`
	OvertimeAmount *decimal.Decimal `json:"overtime_amount"`
	Deductions     *decimal.Decimal `json:"deductions"`
	FineAmount     *decimal.Decimal `json:"fine_amount"`
	NetPay         *decimal.Decimal `json:"net_pay"`
}

// MonthSummary aggregates the stored sheets for one month.
type MonthSummary struct {
	Month      string          `json:"month"`
	Employees  int             `json:"employees"`
	TotalGross decimal.Decimal `json:"total_gross"`
	TotalNet   decimal.Decimal `json:"total_net"`
}

const monthLayout = "2006-01"

type service struct {
	repo Repository
}

// NewService builds the payroll service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payroll repository required")
	}
	return &service{repo: repo}, nil
}

func validMonth(month string) bool {
	_, err := time.Parse(monthLayout, month)
	return err == nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.PayrollSheet, error) {
	sheets, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing payroll sheets")
	}
	return sheets, nil
}

func (s *service) getSheet(ctx context.Context, id uuid.UUID) (*models.PayrollSheet, error) {
	sheet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payroll sheet")
	}
	if sheet == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payroll sheet not found")
	}
	return sheet, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PayrollSheet, error) {
	return s.getSheet(ctx, id)
}

func (s *service) Create(ctx context.Context, input SheetInput) (*models.PayrollSheet, error) {
	if !validMonth(input.Month) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "month must be YYYY-MM")
	}
	if input.EmployeeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee_id is required")
	}

	// Net defaults to gross minus deductions when the client leaves it out.
	netPay := input.BasicPay.
		Add(input.Allowances).
		Add(input.OvertimeAmount).
		Sub(input.Deductions).
		Sub(input.FineAmount)
	if input.NetPay != nil {
		netPay = *input.NetPay
	}

	sheet := &models.PayrollSheet{
		Month:          input.Month,
		EmployeeID:     input.EmployeeID,
		BasicPay:       input.BasicPay,
		Allowances:     input.Allowances,
		OvertimeAmount: input.OvertimeAmount,
		Deductions:     input.Deductions,
		FineAmount:     input.FineAmount,
		NetPay:         netPay,
		Status:         enums.PayrollSheetStatusDraft,
	}
	if err := s.repo.Create(ctx, sheet); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sheet already exists for month and employee")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating payroll sheet")
	}
	return sheet, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input SheetUpdateInput) (*models.PayrollSheet, error) {
	sheet, err := s.getSheet(ctx, id)
	if err != nil {
		return nil, err
	}
	if sheet.Status == enums.PayrollSheetStatusFinalized {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "finalized sheet is immutable")
	}

	if input.BasicPay != nil {
		sheet.BasicPay = *input.BasicPay
	}
	if input.Allowances != nil {
		sheet.Allowances = *input.Allowances
	}
	if input.OvertimeAmount != nil {
		sheet.OvertimeAmount = *input.OvertimeAmount
	}
	if input.Deductions != nil {
		sheet.Deductions = *input.Deductions
	}
	if input.FineAmount != nil {
		sheet.FineAmount = *input.FineAmount
	}
	if input.NetPay != nil {
		sheet.NetPay = *input.NetPay
	}

	if err := s.repo.Update(ctx, sheet); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating payroll sheet")
	}
	return sheet, nil
}

func (s *service) Finalize(ctx context.Context, id uuid.UUID) (*models.PayrollSheet, error) {
	sheet, err := s.getSheet(ctx, id)
	if err != nil {
		return nil, err
	}
	if sheet.Status == enums.PayrollSheetStatusFinalized {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "sheet already finalized")
	}

	sheet.Status = enums.PayrollSheetStatusFinalized
	if err := s.repo.Update(ctx, sheet); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalizing payroll sheet")
	}
	return sheet, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	sheet, err := s.getSheet(ctx, id)
	if err != nil {
		return err
	}
	if sheet.Status == enums.PayrollSheetStatusFinalized {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "finalized sheet is immutable")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting payroll sheet")
	}
	return nil
}

func (s *service) MonthSummary(ctx context.Context, month string) (*MonthSummary, error) {
	if !validMonth(month) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "month must be YYYY-MM")
	}

	sheets, err := s.repo.List(ctx, ListFilter{Month: &month})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing payroll sheets")
	}

	summary := &MonthSummary{Month: month, Employees: len(sheets)}
	for _, sheet := range sheets {
		gross := sheet.BasicPay.Add(sheet.Allowances).Add(sheet.OvertimeAmount)
		summary.TotalGross = summary.TotalGross.Add(gross)
		summary.TotalNet = summary.TotalNet.Add(sheet.NetPay)
	}
	return summary, nil
}
