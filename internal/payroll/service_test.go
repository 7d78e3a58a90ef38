package payroll

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/enums"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

func setupPayrollTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sheets := `
CREATE TABLE IF NOT EXISTS payroll_sheets (
  id TEXT PRIMARY KEY,
  month TEXT NOT NULL,
  employee_id TEXT NOT NULL,
  basic_pay NUMERIC NOT NULL DEFAULT 0,
  allowances NUMERIC NOT NULL DEFAULT 0,
  overtime_amount NUMERIC NOT NULL DEFAULT 0,
  deductions NUMERIC NOT NULL DEFAULT 0,
  fine_amount NUMERIC NOT NULL DEFAULT 0,
  net_pay NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'draft',
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (month, employee_id)
);`
	require.NoError(t, db.Exec(sheets).Error)
	require.NoError(t, db.Exec(`DELETE FROM payroll_sheets`).Error)
	return db
}

func newPayrollService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupPayrollTestDB(t)))
	require.NoError(t, err)
	return svc
}

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestCreateSheetDefaultsNetPay(t *testing.T) {
	svc := newPayrollService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, SheetInput{Month: "2026-13", EmployeeID: "SEC-1"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	_, err = svc.Create(ctx, SheetInput{Month: "2026-08"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	sheet, err := svc.Create(ctx, SheetInput{
		Month:      "2026-08",
		EmployeeID: "SEC-1",
		BasicPay:   dec(t, "32000"),
		Allowances: dec(t, "5000"),
		Deductions: dec(t, "1200"),
		FineAmount: dec(t, "300"),
	})
	require.NoError(t, err)
	assert.True(t, sheet.NetPay.Equal(dec(t, "35500")))
	assert.Equal(t, enums.PayrollSheetStatusDraft, sheet.Status)

	_, err = svc.Create(ctx, SheetInput{Month: "2026-08", EmployeeID: "SEC-1"})
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestFinalizedSheetIsImmutable(t *testing.T) {
	svc := newPayrollService(t)
	ctx := context.Background()

	sheet, err := svc.Create(ctx, SheetInput{Month: "2026-07", EmployeeID: "SEC-2", BasicPay: dec(t, "30000")})
	require.NoError(t, err)

	finalized, err := svc.Finalize(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PayrollSheetStatusFinalized, finalized.Status)

	_, err = svc.Finalize(ctx, sheet.ID)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	pay := dec(t, "31000")
	_, err = svc.Update(ctx, sheet.ID, SheetUpdateInput{BasicPay: &pay})
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	err = svc.Delete(ctx, sheet.ID)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	_, err = svc.Finalize(ctx, uuid.New())
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestMonthSummaryAggregates(t *testing.T) {
	svc := newPayrollService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, SheetInput{
		Month: "2026-06", EmployeeID: "SEC-3",
		BasicPay: dec(t, "30000"), Allowances: dec(t, "2000"), Deductions: dec(t, "1000"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, SheetInput{
		Month: "2026-06", EmployeeID: "SEC-4",
		BasicPay: dec(t, "28000"), OvertimeAmount: dec(t, "1500"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, SheetInput{Month: "2026-07", EmployeeID: "SEC-3", BasicPay: dec(t, "30000")})
	require.NoError(t, err)

	summary, err := svc.MonthSummary(ctx, "2026-06")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Employees)
	assert.True(t, summary.TotalGross.Equal(dec(t, "61500")))
	assert.True(t, summary.TotalNet.Equal(dec(t, "60500")))

	month := "2026-06"
	sheets, err := svc.List(ctx, ListFilter{Month: &month})
	require.NoError(t, err)
	assert.Len(t, sheets, 2)
}
