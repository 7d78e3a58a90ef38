package enums

import "fmt"

// PayrollSheetStatus marks whether a payroll sheet is still editable.
type PayrollSheetStatus string

const (
	PayrollSheetStatusDraft     PayrollSheetStatus = "draft"
	PayrollSheetStatusFinalized PayrollSheetStatus = "finalized"
)

var validPayrollSheetStatuses = []PayrollSheetStatus{
	PayrollSheetStatusDraft,
	PayrollSheetStatusFinalized,
}

// IsValid reports whether the value matches the canonical sheet status enum.
func (s PayrollSheetStatus) IsValid() bool {
	for _, candidate := range validPayrollSheetStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePayrollSheetStatus converts raw input into PayrollSheetStatus.
func ParsePayrollSheetStatus(value string) (PayrollSheetStatus, error) {
	for _, candidate := range validPayrollSheetStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payroll sheet status %q", value)
}
