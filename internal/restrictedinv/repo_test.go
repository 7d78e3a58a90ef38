package restrictedinv

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
)

func setupRestrictedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	items := `
CREATE TABLE IF NOT EXISTS restricted_inventory_items (
  id TEXT PRIMARY KEY,
  item_code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  category TEXT,
  license_required INTEGER NOT NULL DEFAULT 0,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	units := `
CREATE TABLE IF NOT EXISTS restricted_serial_units (
  id TEXT PRIMARY KEY,
  item_code TEXT NOT NULL,
  serial_number TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'in_stock',
  issued_to_employee_id TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (item_code, serial_number)
);`
	txs := `
CREATE TABLE IF NOT EXISTS restricted_inventory_transactions (
  id TEXT PRIMARY KEY,
  item_code TEXT NOT NULL,
  employee_id TEXT,
  serial_unit_id TEXT NOT NULL,
  action TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(items).Error)
	require.NoError(t, db.Exec(units).Error)
	require.NoError(t, db.Exec(txs).Error)
	require.NoError(t, db.Exec(`DELETE FROM restricted_inventory_items`).Error)
	require.NoError(t, db.Exec(`DELETE FROM restricted_serial_units`).Error)
	require.NoError(t, db.Exec(`DELETE FROM restricted_inventory_transactions`).Error)
	return db
}

func TestRepositoryItemRoundTrip(t *testing.T) {
	db := setupRestrictedTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	item := &models.RestrictedInventoryItem{ItemCode: "AR-01", Name: "Rifle"}
	require.NoError(t, repo.CreateItem(ctx, item))
	require.NotEqual(t, "", item.ID.String())

	found, err := repo.GetItemByCode(ctx, "AR-01")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Rifle", found.Name)

	missing, err := repo.GetItemByCode(ctx, "AR-99")
	require.NoError(t, err)
	require.Nil(t, missing)

	dup := &models.RestrictedInventoryItem{ItemCode: "AR-01", Name: "Other"}
	require.Error(t, repo.CreateItem(ctx, dup))
}

func TestRepositorySerialUnitUniquePerItem(t *testing.T) {
	db := setupRestrictedTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateSerialUnit(ctx, &models.SerialUnit{ItemCode: "AR-01", SerialNumber: "SN-1"}))
	require.Error(t, repo.CreateSerialUnit(ctx, &models.SerialUnit{ItemCode: "AR-01", SerialNumber: "SN-1"}))
	// The same serial number under a different item is a different unit.
	require.NoError(t, repo.CreateSerialUnit(ctx, &models.SerialUnit{ItemCode: "PX-02", SerialNumber: "SN-1"}))

	units, err := repo.ListSerialUnits(ctx, "AR-01")
	require.NoError(t, err)
	require.Len(t, units, 1)
}

func TestRepositoryListTransactionsFilters(t *testing.T) {
	db := setupRestrictedTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	emp1, emp2 := "SEC-1", "SEC-2"
	unitID := uuidMust(t)
	for _, tx := range []*models.RestrictedTransaction{
		{ItemCode: "AR-01", EmployeeID: &emp1, SerialUnitID: unitID, Action: "issue"},
		{ItemCode: "AR-01", EmployeeID: &emp1, SerialUnitID: unitID, Action: "return"},
		{ItemCode: "PX-02", EmployeeID: &emp2, SerialUnitID: unitID, Action: "issue"},
	} {
		require.NoError(t, repo.AppendTransaction(ctx, tx))
	}

	all, err := repo.ListTransactions(ctx, TxFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	code := "AR-01"
	byItem, err := repo.ListTransactions(ctx, TxFilter{ItemCode: &code})
	require.NoError(t, err)
	require.Len(t, byItem, 2)

	byEmployee, err := repo.ListTransactions(ctx, TxFilter{EmployeeID: &emp2})
	require.NoError(t, err)
	require.Len(t, byEmployee, 1)
	require.Equal(t, "PX-02", byEmployee[0].ItemCode)
}

func TestRepositoryListTransactionsDeterministicOrder(t *testing.T) {
	db := setupRestrictedTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	stamp := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	unitID := uuidMust(t)
	low := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	high := uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee")

	// Same created_at on purpose; the id tiebreak must decide.
	require.NoError(t, repo.AppendTransaction(ctx, &models.RestrictedTransaction{
		ID: low, ItemCode: "AR-01", SerialUnitID: unitID, Action: "issue", CreatedAt: stamp,
	}))
	require.NoError(t, repo.AppendTransaction(ctx, &models.RestrictedTransaction{
		ID: high, ItemCode: "AR-01", SerialUnitID: unitID, Action: "return", CreatedAt: stamp,
	}))

	first, err := repo.ListTransactions(ctx, TxFilter{})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, high, first[0].ID)
	require.Equal(t, low, first[1].ID)

	second, err := repo.ListTransactions(ctx, TxFilter{})
	require.NoError(t, err)
	require.Equal(t, first, second)
}
