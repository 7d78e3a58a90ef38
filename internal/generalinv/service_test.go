package generalinv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/enums"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupGeneralInvTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	items := `
CREATE TABLE IF NOT EXISTS general_inventory_items (
  id TEXT PRIMARY KEY,
  item_code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  category TEXT,
  unit TEXT,
  quantity_on_hand INTEGER NOT NULL DEFAULT 0,
  reorder_level INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	txs := `
CREATE TABLE IF NOT EXISTS general_inventory_transactions (
  id TEXT PRIMARY KEY,
  item_code TEXT NOT NULL,
  employee_id TEXT,
  quantity INTEGER NOT NULL,
  action TEXT NOT NULL,
  notes TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(items).Error)
	require.NoError(t, db.Exec(txs).Error)
	require.NoError(t, db.Exec(`DELETE FROM general_inventory_items`).Error)
	require.NoError(t, db.Exec(`DELETE FROM general_inventory_transactions`).Error)
	return db
}

func newGeneralInvService(t *testing.T) Service {
	t.Helper()
	db := setupGeneralInvTestDB(t)
	svc, err := NewService(NewRepository(db), &gormTxRunner{db: db})
	require.NoError(t, err)
	return svc
}

func seedItem(t *testing.T, svc Service, itemCode string, quantity int) {
	t.Helper()
	_, err := svc.CreateItem(context.Background(), ItemInput{
		ItemCode:       itemCode,
		Name:           itemCode + " item",
		Category:       "uniform",
		QuantityOnHand: quantity,
	})
	require.NoError(t, err)
}

func TestIssueAndReturnMoveQuantity(t *testing.T) {
	svc := newGeneralInvService(t)
	ctx := context.Background()
	seedItem(t, svc, "UNI-01", 50)

	issued, err := svc.Issue(ctx, "UNI-01", MovementInput{EmployeeID: "SEC-1", Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, 42, issued.QuantityOnHand)

	returned, err := svc.Return(ctx, "UNI-01", MovementInput{EmployeeID: "SEC-1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 45, returned.QuantityOnHand)

	txs, err := svc.ListTransactions(ctx, TxFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	_, err = svc.Issue(ctx, "UNI-01", MovementInput{EmployeeID: "SEC-1"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	_, err = svc.Issue(ctx, "UNI-404", MovementInput{EmployeeID: "SEC-1", Quantity: 1})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestLostAndDamagedAreLedgerOnly(t *testing.T) {
	svc := newGeneralInvService(t)
	ctx := context.Background()
	seedItem(t, svc, "TRC-01", 20)

	lost, err := svc.ReportLost(ctx, "TRC-01", MovementInput{EmployeeID: "SEC-2", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 20, lost.QuantityOnHand)

	damaged, err := svc.ReportDamaged(ctx, "TRC-01", MovementInput{EmployeeID: "SEC-2", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 20, damaged.QuantityOnHand)

	code := "TRC-01"
	txs, err := svc.ListTransactions(ctx, TxFilter{ItemCode: &code})
	require.NoError(t, err)
	require.Len(t, txs, 2)
}

func TestAdjustSetsAbsoluteQuantity(t *testing.T) {
	svc := newGeneralInvService(t)
	ctx := context.Background()
	seedItem(t, svc, "BLT-01", 7)

	adjusted, err := svc.Adjust(ctx, "BLT-01", AdjustInput{Quantity: 31})
	require.NoError(t, err)
	assert.Equal(t, 31, adjusted.QuantityOnHand)

	txs, err := svc.ListTransactions(ctx, TxFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, enums.GeneralTxActionAdjust, txs[0].Action)
	assert.Equal(t, 31, txs[0].Quantity)
	assert.Nil(t, txs[0].EmployeeID)

	_, err = svc.Adjust(ctx, "BLT-01", AdjustInput{Quantity: -1})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestItemCRUDAndCategories(t *testing.T) {
	svc := newGeneralInvService(t)
	ctx := context.Background()

	seedItem(t, svc, "UNI-02", 10)
	_, err := svc.CreateItem(ctx, ItemInput{ItemCode: "UNI-02", Name: "dup"})
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	_, err = svc.CreateItem(ctx, ItemInput{ItemCode: "RAD-01", Name: "Radio set", Category: "comms"})
	require.NoError(t, err)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"comms", "uniform"}, categories)

	level := 5
	updated, err := svc.UpdateItem(ctx, "RAD-01", ItemUpdateInput{ReorderLevel: &level})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.ReorderLevel)

	require.NoError(t, svc.DeleteItem(ctx, "RAD-01"))
	_, err = svc.GetItem(ctx, "RAD-01")
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
