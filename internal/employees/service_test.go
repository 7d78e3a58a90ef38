package employees

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/listing"
)

func setupEmployeesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	employees := `
CREATE TABLE IF NOT EXISTS employees (
  id TEXT PRIMARY KEY,
  employee_id TEXT NOT NULL UNIQUE,
  full_name TEXT NOT NULL,
  cnic TEXT,
  phone TEXT,
  email TEXT,
  status TEXT NOT NULL DEFAULT 'Active',
  unit TEXT,
  rank TEXT,
  deployed_at TEXT,
  date_of_birth TEXT,
  joining_date TEXT,
  address TEXT,
  basic_pay NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`
	warnings := `
CREATE TABLE IF NOT EXISTS employee_warnings (
  id TEXT PRIMARY KEY,
  employee_id TEXT NOT NULL,
  date TEXT NOT NULL,
  category TEXT,
  details TEXT,
  issued_by TEXT,
  created_at DATETIME
);`
	documents := `
CREATE TABLE IF NOT EXISTS employee_documents (
  id TEXT PRIMARY KEY,
  employee_id TEXT NOT NULL,
  filename TEXT NOT NULL,
  url TEXT NOT NULL,
  mime_type TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(employees).Error)
	require.NoError(t, db.Exec(warnings).Error)
	require.NoError(t, db.Exec(documents).Error)
	require.NoError(t, db.Exec(`DELETE FROM employees`).Error)
	require.NoError(t, db.Exec(`DELETE FROM employee_warnings`).Error)
	require.NoError(t, db.Exec(`DELETE FROM employee_documents`).Error)
	return db
}

func newEmployeesService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupEmployeesTestDB(t)), nil)
	require.NoError(t, err)
	return svc
}

func strPtr(s string) *string { return &s }

func TestCreateGeneratesBusinessID(t *testing.T) {
	svc := newEmployeesService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{FullName: "Ahmed Khan"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.EmployeeID, "SEC-"))
	assert.Greater(t, len(created.EmployeeID), len("SEC-")+4)
	assert.Equal(t, "Active", created.Status)

	other, err := svc.Create(ctx, CreateInput{FullName: "Bilal Shah"})
	require.NoError(t, err)
	assert.NotEqual(t, created.EmployeeID, other.EmployeeID)
}

func TestCreateNormalizesAliasFields(t *testing.T) {
	svc := newEmployeesService(t)
	ctx := context.Background()

	dob, err := types.ParseDate("1990-05-14")
	require.NoError(t, err)

	created, err := svc.Create(ctx, CreateInput{
		FirstName:        "Imran",
		LastName:         "Malik",
		EmploymentStatus: "probation",
		DOB:              &dob,
	})
	require.NoError(t, err)
	assert.Equal(t, "Imran Malik", created.FullName)
	assert.Equal(t, "probation", created.Status)
	require.NotNil(t, created.DateOfBirth)
	assert.Equal(t, "1990-05-14", created.DateOfBirth.String())

	// Canonical fields win over aliases when both arrive.
	canon, err := svc.Create(ctx, CreateInput{
		FullName: "Full Name",
		Name:     "Alias Name",
		Status:   "Active",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alias Name", canon.FullName)

	_, err = svc.Create(ctx, CreateInput{})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateNormalizesAliasFields(t *testing.T) {
	svc := newEmployeesService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{FullName: "Kamran Ali", Unit: "Alpha"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.EmployeeID, UpdateInput{
		EmploymentStatus: strPtr("left"),
		Name:             strPtr("Kamran A. Ali"),
	})
	require.NoError(t, err)
	assert.Equal(t, "left", updated.Status)
	assert.Equal(t, "Kamran A. Ali", updated.FullName)
	assert.Equal(t, "Alpha", updated.Unit)

	_, err = svc.Update(ctx, "SEC-NOPE", UpdateInput{})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListFiltersAndTotal(t *testing.T) {
	svc := newEmployeesService(t)
	ctx := context.Background()

	seed := []CreateInput{
		{FullName: "Guard One", Unit: "Alpha", Rank: "Sepoy", Phone: "0300-1111111"},
		{FullName: "Guard Two", Unit: "Alpha", Rank: "Havildar"},
		{FullName: "Supervisor", Unit: "Bravo", Rank: "Havildar", Status: "inactive"},
	}
	for _, in := range seed {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	byUnit, err := svc.List(ctx, ListInput{ListFilter: ListFilter{Unit: strPtr("Alpha")}, WithTotal: true})
	require.NoError(t, err)
	require.Len(t, byUnit.Employees, 2)
	require.NotNil(t, byUnit.Total)
	assert.Equal(t, int64(2), *byUnit.Total)

	byStatus, err := svc.List(ctx, ListInput{ListFilter: ListFilter{Status: strPtr("inactive")}})
	require.NoError(t, err)
	require.Len(t, byStatus.Employees, 1)
	assert.Equal(t, "Supervisor", byStatus.Employees[0].FullName)
	assert.Nil(t, byStatus.Total)

	bySearch, err := svc.List(ctx, ListInput{ListFilter: ListFilter{Search: strPtr("0300-111")}})
	require.NoError(t, err)
	require.Len(t, bySearch.Employees, 1)
	assert.Equal(t, "Guard One", bySearch.Employees[0].FullName)

	paged, err := svc.List(ctx, ListInput{ListFilter: ListFilter{Params: listing.Params{Limit: 1, Offset: 1}}, WithTotal: true})
	require.NoError(t, err)
	require.Len(t, paged.Employees, 1)
	assert.Equal(t, int64(3), *paged.Total)
}

func TestBulkDeleteCountsSuccesses(t *testing.T) {
	svc := newEmployeesService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{FullName: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateInput{FullName: "B"})
	require.NoError(t, err)

	deleted, err := svc.BulkDelete(ctx, []string{a.EmployeeID, "SEC-NOPE", b.EmployeeID})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	res, err := svc.List(ctx, ListInput{})
	require.NoError(t, err)
	assert.Empty(t, res.Employees)
}

func TestWarningsAndDocuments(t *testing.T) {
	svc := newEmployeesService(t)
	ctx := context.Background()

	emp, err := svc.Create(ctx, CreateInput{FullName: "Warned Guard"})
	require.NoError(t, err)

	warning, err := svc.CreateWarning(ctx, emp.EmployeeID, WarningInput{
		Category: "late",
		Details:  "Arrived 40 minutes late to post",
		IssuedBy: "duty officer",
	})
	require.NoError(t, err)
	assert.False(t, warning.Date.IsZero())

	doc, err := svc.AddDocument(ctx, emp.EmployeeID, DocumentInput{
		Filename: "cnic-front.jpg",
		URL:      "uploads/cnic-front.jpg",
		MimeType: "image/jpeg",
	})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, emp.EmployeeID)
	require.NoError(t, err)
	require.Len(t, detail.Warnings, 1)
	require.Len(t, detail.Documents, 1)

	require.NoError(t, svc.DeleteWarning(ctx, emp.EmployeeID, warning.ID))
	require.NoError(t, svc.DeleteDocument(ctx, emp.EmployeeID, doc.ID))

	detail, err = svc.Get(ctx, emp.EmployeeID)
	require.NoError(t, err)
	assert.Empty(t, detail.Warnings)
	assert.Empty(t, detail.Documents)

	_, err = svc.CreateWarning(ctx, "SEC-NOPE", WarningInput{})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.AddDocument(ctx, emp.EmployeeID, DocumentInput{Filename: "x"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
