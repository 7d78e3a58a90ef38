package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layout is the wire and storage format for calendar dates.
const Layout = "2006-01-02"

// Date is a calendar day without a time component. It marshals as
// "YYYY-MM-DD" and stores as a DATE-compatible string so equality and
// BETWEEN filters behave identically on Postgres and SQLite.
type Date struct {
	t time.Time
}

// ParseDate validates and parses a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := time.ParseInLocation(Layout, trimmed, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Date{t: parsed}, nil
}

// DateOf truncates a time.Time to its calendar day in UTC.
func DateOf(t time.Time) Date {
	utc := t.UTC()
	return Date{t: time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(Layout)
}

// Time exposes the underlying midnight-UTC instant.
func (d Date) Time() time.Time {
	return d.t
}

// AddDays returns the date shifted by the given number of calendar days,
// handling month and year rollover.
func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether both values name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// DaysUntil returns the signed day count from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// Value implements driver.Valuer, storing the ISO string form.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner for DATE, TEXT, and time-typed columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(value string) error {
	if value == "" {
		*d = Date{}
		return nil
	}
	// DATETIME columns round-trip with a time suffix on SQLite.
	if len(value) > len(Layout) {
		value = value[:len(Layout)]
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON renders the date as a quoted ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType keeps gorm mapping the field to a date column.
func (Date) GormDataType() string {
	return "date"
}
