package restrictedinv

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/enums"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func uuidMust(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func newTestService(t *testing.T) (Service, Repository) {
	t.Helper()
	db := setupRestrictedTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, &gormTxRunner{db: db})
	require.NoError(t, err)
	return svc, repo
}

func seedUnit(t *testing.T, svc Service, itemCode, serial string) *models.SerialUnit {
	t.Helper()
	ctx := context.Background()
	_, err := svc.CreateItem(ctx, ItemInput{ItemCode: itemCode, Name: itemCode + " item"})
	if err != nil {
		// item may already exist from an earlier seed in the same test
		require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
	}
	unit, err := svc.CreateSerialUnit(ctx, itemCode, SerialUnitInput{SerialNumber: serial})
	require.NoError(t, err)
	return unit
}

func TestItemCRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, ItemInput{Name: "no code"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	created, err := svc.CreateItem(ctx, ItemInput{ItemCode: "AR-01", Name: "Rifle", Category: "firearm", LicenseRequired: true})
	require.NoError(t, err)
	require.True(t, created.LicenseRequired)

	_, err = svc.CreateItem(ctx, ItemInput{ItemCode: "AR-01", Name: "Duplicate"})
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	name := "Carbine"
	updated, err := svc.UpdateItem(ctx, "AR-01", ItemUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Carbine", updated.Name)
	assert.Equal(t, "firearm", updated.Category)

	_, err = svc.GetItem(ctx, "AR-404")
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	require.NoError(t, svc.DeleteItem(ctx, "AR-01"))
	err = svc.DeleteItem(ctx, "AR-01")
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateSerialUnitRequiresItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSerialUnit(ctx, "AR-404", SerialUnitInput{SerialNumber: "SN-1"})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.CreateItem(ctx, ItemInput{ItemCode: "AR-02", Name: "Shotgun"})
	require.NoError(t, err)
	_, err = svc.CreateSerialUnit(ctx, "AR-02", SerialUnitInput{})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestIssueReturnRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	unit := seedUnit(t, svc, "AR-03", "SN-100")

	issued, err := svc.IssueSerial(ctx, unit.ID, "SEC-50")
	require.NoError(t, err)
	require.Equal(t, enums.SerialUnitStatusIssued, issued.Status)
	require.NotNil(t, issued.IssuedToEmployeeID)
	require.Equal(t, "SEC-50", *issued.IssuedToEmployeeID)

	time.Sleep(2 * time.Millisecond)

	returned, err := svc.ReturnSerial(ctx, unit.ID)
	require.NoError(t, err)
	require.Equal(t, enums.SerialUnitStatusInStock, returned.Status)
	require.Nil(t, returned.IssuedToEmployeeID)

	txs, err := svc.ListTransactions(ctx, TxFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	// Newest first; the return row keeps the outgoing custodian.
	assert.Equal(t, enums.RestrictedTxActionReturn, txs[0].Action)
	require.NotNil(t, txs[0].EmployeeID)
	assert.Equal(t, "SEC-50", *txs[0].EmployeeID)
	assert.Equal(t, enums.RestrictedTxActionIssue, txs[1].Action)
}

func TestIssueAlreadyIssuedIsStateConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	unit := seedUnit(t, svc, "AR-04", "SN-200")

	_, err := svc.IssueSerial(ctx, unit.ID, "SEC-60")
	require.NoError(t, err)

	_, err = svc.IssueSerial(ctx, unit.ID, "SEC-61")
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	// The failed attempt must not leave a ledger row or change custody.
	txs, err := svc.ListTransactions(ctx, TxFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)

	units, err := svc.ListSerialUnits(ctx, "AR-04")
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.NotNil(t, units[0].IssuedToEmployeeID)
	require.Equal(t, "SEC-60", *units[0].IssuedToEmployeeID)
}

func TestReturnInStockIsStateConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	unit := seedUnit(t, svc, "AR-05", "SN-300")

	_, err := svc.ReturnSerial(ctx, unit.ID)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	txs, err := svc.ListTransactions(ctx, TxFilter{})
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestIssueUnknownUnitIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.IssueSerial(ctx, uuid.New(), "SEC-70")
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.IssueSerial(ctx, uuid.New(), "")
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
