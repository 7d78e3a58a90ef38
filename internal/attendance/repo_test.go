package attendance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	"github.com/hmranwar/guardpost-backend/pkg/enums"
)

func setupAttendanceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	attendance := `
CREATE TABLE IF NOT EXISTS attendance (
  id TEXT PRIMARY KEY,
  employee_id TEXT NOT NULL,
  date TEXT NOT NULL,
  status TEXT NOT NULL,
  note TEXT,
  overtime_minutes INTEGER,
  overtime_rate NUMERIC,
  late_minutes INTEGER,
  late_deduction NUMERIC,
  leave_type TEXT,
  fine_amount NUMERIC,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (employee_id, date)
);`
	leavePeriods := `
CREATE TABLE IF NOT EXISTS leave_periods (
  id TEXT PRIMARY KEY,
  employee_id TEXT NOT NULL,
  from_date TEXT NOT NULL,
  to_date TEXT NOT NULL,
  leave_type TEXT NOT NULL,
  reason TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(attendance).Error)
	require.NoError(t, db.Exec(leavePeriods).Error)
	require.NoError(t, db.Exec(`DELETE FROM attendance`).Error)
	require.NoError(t, db.Exec(`DELETE FROM leave_periods`).Error)
	return db
}

func mustDate(t *testing.T, value string) types.Date {
	t.Helper()
	d, err := types.ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestRepositoryFindByEmployeeDate(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	day := mustDate(t, "2025-03-10")
	require.NoError(t, repo.Create(ctx, &models.AttendanceRecord{
		EmployeeID: "SEC-100",
		Date:       day,
		Status:     enums.AttendanceStatusPresent,
	}))

	found, err := repo.FindByEmployeeDate(ctx, "SEC-100", day)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, enums.AttendanceStatusPresent, found.Status)

	missing, err := repo.FindByEmployeeDate(ctx, "SEC-100", day.AddDays(1))
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRepositoryReplaceNullsAbsentFields(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	day := mustDate(t, "2025-03-11")
	note := "came late"
	minutes := 30
	original := &models.AttendanceRecord{
		EmployeeID:  "SEC-101",
		Date:        day,
		Status:      enums.AttendanceStatusPresent,
		Note:        &note,
		LateMinutes: &minutes,
	}
	require.NoError(t, repo.Create(ctx, original))

	replacement := &models.AttendanceRecord{
		ID:         original.ID,
		EmployeeID: "SEC-101",
		Date:       day,
		Status:     enums.AttendanceStatusAbsent,
	}
	require.NoError(t, repo.Replace(ctx, replacement))

	found, err := repo.FindByEmployeeDate(ctx, "SEC-101", day)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, enums.AttendanceStatusAbsent, found.Status)
	require.Nil(t, found.Note)
	require.Nil(t, found.LateMinutes)
}

func TestRepositoryListOrdering(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	d1 := mustDate(t, "2025-04-01")
	d2 := mustDate(t, "2025-04-02")
	for _, rec := range []*models.AttendanceRecord{
		{EmployeeID: "SEC-2", Date: d1, Status: enums.AttendanceStatusPresent},
		{EmployeeID: "SEC-1", Date: d1, Status: enums.AttendanceStatusAbsent},
		{EmployeeID: "SEC-1", Date: d2, Status: enums.AttendanceStatusPresent},
	} {
		require.NoError(t, repo.Create(ctx, rec))
	}

	byDate, err := repo.ListByDate(ctx, d1)
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	require.Equal(t, "SEC-1", byDate[0].EmployeeID)
	require.Equal(t, "SEC-2", byDate[1].EmployeeID)

	byRange, err := repo.ListByRange(ctx, d1, d2)
	require.NoError(t, err)
	require.Len(t, byRange, 3)
	require.Equal(t, d1, byRange[0].Date)
	require.Equal(t, d2, byRange[2].Date)

	byEmployee, err := repo.ListByEmployee(ctx, "SEC-1", d1, d2)
	require.NoError(t, err)
	require.Len(t, byEmployee, 2)
	require.True(t, byEmployee[0].Date.Before(byEmployee[1].Date))
}
