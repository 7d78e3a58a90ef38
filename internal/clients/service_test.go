package clients

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/internal/employees"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

func mustDate(t *testing.T, value string) types.Date {
	t.Helper()
	date, err := types.ParseDate(value)
	require.NoError(t, err)
	return date
}

func setupClientsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  industry TEXT,
  phone TEXT,
  email TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS client_contacts (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT,
  phone TEXT,
  email TEXT
);`,
		`CREATE TABLE IF NOT EXISTS client_addresses (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  label TEXT,
  line1 TEXT NOT NULL,
  line2 TEXT,
  city TEXT,
  region TEXT,
  country TEXT
);`,
		`CREATE TABLE IF NOT EXISTS client_sites (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  name TEXT NOT NULL,
  address TEXT,
  guards_required INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS client_contracts (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  contract_number TEXT NOT NULL,
  start_date TEXT NOT NULL,
  end_date TEXT,
  monthly_value NUMERIC,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS site_assignments (
  id TEXT PRIMARY KEY,
  site_id TEXT NOT NULL,
  employee_id TEXT NOT NULL,
  shift TEXT,
  from_date TEXT NOT NULL,
  to_date TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS employees (
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
);`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{
		"clients", "client_contacts", "client_addresses", "client_sites",
		"client_contracts", "site_assignments", "employees",
	} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func newClientsService(t *testing.T) (Service, employees.Repository) {
	t.Helper()
	db := setupClientsTestDB(t)
	employeeRepo := employees.NewRepository(db)
	svc, err := NewService(NewRepository(db), employeeRepo)
	require.NoError(t, err)
	return svc, employeeRepo
}

func seedGuard(t *testing.T, repo employees.Repository, employeeID, name string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.Employee{
		EmployeeID: employeeID,
		FullName:   name,
		Status:     "Active",
	}))
}

func TestClientCRUDWithSubResources(t *testing.T) {
	svc, _ := newClientsService(t)
	ctx := context.Background()

	_, err := svc.CreateClient(ctx, ClientInput{})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	client, err := svc.CreateClient(ctx, ClientInput{Name: "Mega Mall", Industry: "retail"})
	require.NoError(t, err)
	assert.Equal(t, "active", client.Status)

	contact, err := svc.CreateContact(ctx, client.ID, ContactInput{Name: "Mr. Siddiqui", Role: "admin"})
	require.NoError(t, err)
	_, err = svc.CreateAddress(ctx, client.ID, AddressInput{Line1: "Plot 4, Industrial Area", City: "Lahore"})
	require.NoError(t, err)
	site, err := svc.CreateSite(ctx, client.ID, SiteInput{Name: "Main Gate", GuardsRequired: 4})
	require.NoError(t, err)

	detail, err := svc.GetClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, detail.Contacts, 1)
	require.Len(t, detail.Addresses, 1)
	require.Len(t, detail.Sites, 1)
	assert.Equal(t, "Main Gate", detail.Sites[0].Name)

	updatedContact, err := svc.UpdateContact(ctx, client.ID, contact.ID, ContactInput{Name: "Mr. Siddiqui", Role: "operations"})
	require.NoError(t, err)
	assert.Equal(t, "operations", updatedContact.Role)

	_, err = svc.UpdateContact(ctx, client.ID, uuid.New(), ContactInput{Name: "x"})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	required := 6
	updatedSite, err := svc.UpdateSite(ctx, client.ID, site.ID, SiteUpdateInput{GuardsRequired: &required})
	require.NoError(t, err)
	assert.Equal(t, 6, updatedSite.GuardsRequired)

	require.NoError(t, svc.DeleteClient(ctx, client.ID))
	_, err = svc.GetClient(ctx, client.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestContractValidation(t *testing.T) {
	svc, _ := newClientsService(t)
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, ClientInput{Name: "Bank Branch"})
	require.NoError(t, err)

	start := mustDate(t, "2026-01-01")
	end := mustDate(t, "2025-12-01")
	_, err = svc.CreateContract(ctx, client.ID, ContractInput{
		ContractNumber: "CT-100",
		StartDate:      start,
		EndDate:        &end,
	})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	contract, err := svc.CreateContract(ctx, client.ID, ContractInput{
		ContractNumber: "CT-100",
		StartDate:      start,
	})
	require.NoError(t, err)
	assert.Equal(t, "active", contract.Status)

	status := "expired"
	updated, err := svc.UpdateContract(ctx, client.ID, contract.ID, ContractUpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "expired", updated.Status)
}

func TestGuardAssignmentLifecycle(t *testing.T) {
	svc, employeeRepo := newClientsService(t)
	ctx := context.Background()

	seedGuard(t, employeeRepo, "SEC-100", "Guard One")
	seedGuard(t, employeeRepo, "SEC-101", "Guard Two")

	client, err := svc.CreateClient(ctx, ClientInput{Name: "Factory"})
	require.NoError(t, err)
	site, err := svc.CreateSite(ctx, client.ID, SiteInput{Name: "Warehouse"})
	require.NoError(t, err)

	_, err = svc.AssignGuard(ctx, site.ID, AssignmentInput{EmployeeID: "SEC-404"})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	assignment, err := svc.AssignGuard(ctx, site.ID, AssignmentInput{EmployeeID: "SEC-100", Shift: "night"})
	require.NoError(t, err)
	assert.Nil(t, assignment.ToDate)
	assert.False(t, assignment.FromDate.IsZero())

	guards, err := svc.ListSiteGuards(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, guards, 1)
	assert.Equal(t, "Guard One", guards[0].EmployeeName)

	available, err := svc.AvailableGuards(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "SEC-101", available[0].EmployeeID)

	ejected, err := svc.EjectGuard(ctx, site.ID, assignment.ID, EjectInput{})
	require.NoError(t, err)
	require.NotNil(t, ejected.ToDate)

	_, err = svc.EjectGuard(ctx, site.ID, assignment.ID, EjectInput{})
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	available, err = svc.AvailableGuards(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 2)
}
