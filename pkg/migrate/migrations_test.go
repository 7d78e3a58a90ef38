package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationsDirIsValid(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestMigrationsCoverCoreTables(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	require.NoError(t, err)

	var all strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
		require.NoError(t, err)
		all.Write(b)
	}

	sql := all.String()
	for _, table := range []string{
		"attendance",
		"leave_periods",
		"employees",
		"restricted_serial_units",
		"restricted_inventory_transactions",
		"general_inventory_items",
		"payroll_sheets",
		"users",
	} {
		require.Contains(t, sql, "CREATE TABLE "+table, "missing table %s", table)
	}
}

func TestCreateSQLMigrationTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Something New!")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "-- +goose Up")
	require.Contains(t, string(b), "-- +goose Down")
	require.Contains(t, filepath.Base(path), "add_something_new")

	require.NoError(t, ValidateDir(dir))
}
