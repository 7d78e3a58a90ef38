package enums

import "fmt"

// SerialUnitStatus tracks custody of one serialized restricted-inventory unit.
type SerialUnitStatus string

const (
	SerialUnitStatusInStock SerialUnitStatus = "in_stock"
	SerialUnitStatusIssued  SerialUnitStatus = "issued"
)

var validSerialUnitStatuses = []SerialUnitStatus{
	SerialUnitStatusInStock,
	SerialUnitStatusIssued,
}

// IsValid reports whether the value matches the canonical custody enum.
func (s SerialUnitStatus) IsValid() bool {
	for _, candidate := range validSerialUnitStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSerialUnitStatus converts raw input into SerialUnitStatus.
func ParseSerialUnitStatus(value string) (SerialUnitStatus, error) {
	for _, candidate := range validSerialUnitStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid serial unit status %q", value)
}
