package types

import (
	"encoding/json"
	"testing"
)

func TestParseDateRejectsMalformedInput(t *testing.T) {
	for _, bad := range []string{"", "2024-13-01", "2024-02-30", "01-02-2024", "2024/02/01"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestAddDaysHandlesMonthAndYearRollover(t *testing.T) {
	tests := []struct {
		start string
		days  int
		want  string
	}{
		{"2024-02-29", -1, "2024-02-28"},
		{"2024-02-29", 1, "2024-03-01"},
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-01-01", -1, "2023-12-31"},
	}
	for _, tc := range tests {
		d, err := ParseDate(tc.start)
		if err != nil {
			t.Fatalf("ParseDate(%s): %v", tc.start, err)
		}
		if got := d.AddDays(tc.days).String(); got != tc.want {
			t.Fatalf("%s + %d days = %s, want %s", tc.start, tc.days, got, tc.want)
		}
	}
}

func TestScanAcceptsDatetimeSuffix(t *testing.T) {
	var d Date
	if err := d.Scan("2024-02-29T00:00:00Z"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("unexpected date %s", d)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-06")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2024-01-06"` {
		t.Fatalf("unexpected JSON %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %s", back)
	}
}

func TestDaysUntil(t *testing.T) {
	from, _ := ParseDate("2024-01-01")
	to, _ := ParseDate("2024-01-04")
	if got := from.DaysUntil(to); got != 3 {
		t.Fatalf("DaysUntil = %d, want 3", got)
	}
	if got := to.DaysUntil(from); got != -3 {
		t.Fatalf("DaysUntil = %d, want -3", got)
	}
}
