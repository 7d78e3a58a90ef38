package vehicles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/listing"
)

func setupVehiclesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	vehicles := `
CREATE TABLE IF NOT EXISTS vehicles (
  id TEXT PRIMARY KEY,
  vehicle_id TEXT NOT NULL UNIQUE,
  make TEXT,
  model TEXT,
  year INTEGER,
  plate_number TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  assigned_employee_id TEXT,
  registration_expiry TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	documents := `
CREATE TABLE IF NOT EXISTS vehicle_documents (
  id TEXT PRIMARY KEY,
  vehicle_id TEXT NOT NULL,
  filename TEXT NOT NULL,
  url TEXT NOT NULL,
  mime_type TEXT,
  created_at DATETIME
);`
	images := `
CREATE TABLE IF NOT EXISTS vehicle_images (
  id TEXT PRIMARY KEY,
  vehicle_id TEXT NOT NULL,
  filename TEXT NOT NULL,
  url TEXT NOT NULL,
  mime_type TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(vehicles).Error)
	require.NoError(t, db.Exec(documents).Error)
	require.NoError(t, db.Exec(images).Error)
	require.NoError(t, db.Exec(`DELETE FROM vehicles`).Error)
	require.NoError(t, db.Exec(`DELETE FROM vehicle_documents`).Error)
	require.NoError(t, db.Exec(`DELETE FROM vehicle_images`).Error)
	return db
}

func newVehiclesService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupVehiclesTestDB(t)), nil)
	require.NoError(t, err)
	return svc
}

func TestVehicleCRUD(t *testing.T) {
	svc := newVehiclesService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, VehicleInput{Make: "Toyota"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	created, err := svc.Create(ctx, VehicleInput{VehicleID: "VH-01", Make: "Toyota", Model: "Hilux", Year: 2021})
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)

	_, err = svc.Create(ctx, VehicleInput{VehicleID: "VH-01"})
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	status := "maintenance"
	updated, err := svc.Update(ctx, "VH-01", VehicleUpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", updated.Status)
	assert.Equal(t, "Hilux", updated.Model)

	_, err = svc.Get(ctx, "VH-404")
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	require.NoError(t, svc.Delete(ctx, "VH-01"))
	err = svc.Delete(ctx, "VH-01")
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestImportBulkSkipsBadRows(t *testing.T) {
	svc := newVehiclesService(t)
	ctx := context.Background()

	imported, err := svc.ImportBulk(ctx, []VehicleInput{
		{VehicleID: "VH-10", Make: "Suzuki"},
		{},                   // missing vehicle_id
		{VehicleID: "VH-10"}, // duplicate
		{VehicleID: "VH-11"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	vehicles, err := svc.List(ctx, listing.Params{})
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)
}

func TestVehicleDocumentsAndImages(t *testing.T) {
	svc := newVehiclesService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, VehicleInput{VehicleID: "VH-20"})
	require.NoError(t, err)

	doc, err := svc.AddDocument(ctx, "VH-20", FileInput{Filename: "registration.pdf", URL: "uploads/registration.pdf", MimeType: "application/pdf"})
	require.NoError(t, err)
	image, err := svc.AddImage(ctx, "VH-20", FileInput{Filename: "front.jpg", URL: "uploads/front.jpg", MimeType: "image/jpeg"})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, "VH-20")
	require.NoError(t, err)
	require.Len(t, detail.Documents, 1)
	require.Len(t, detail.Images, 1)

	_, err = svc.AddDocument(ctx, "VH-404", FileInput{Filename: "x", URL: "y"})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	_, err = svc.AddImage(ctx, "VH-20", FileInput{Filename: "x"})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	require.NoError(t, svc.DeleteDocument(ctx, "VH-20", doc.ID))
	require.NoError(t, svc.DeleteImage(ctx, "VH-20", image.ID))

	detail, err = svc.Get(ctx, "VH-20")
	require.NoError(t, err)
	assert.Empty(t, detail.Documents)
	assert.Empty(t, detail.Images)
}
