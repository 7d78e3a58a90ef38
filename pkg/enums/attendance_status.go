package enums

import "fmt"

// AttendanceStatus maps to the attendance_status_enum enum in Postgres.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLeave   AttendanceStatus = "leave"
	AttendanceStatusHalfDay AttendanceStatus = "half_day"
	AttendanceStatusOff     AttendanceStatus = "off"
)

var validAttendanceStatuses = []AttendanceStatus{
	AttendanceStatusPresent,
	AttendanceStatusAbsent,
	AttendanceStatusLeave,
	AttendanceStatusHalfDay,
	AttendanceStatusOff,
}

// IsValid reports whether the value matches the canonical attendance enum.
func (s AttendanceStatus) IsValid() bool {
	for _, candidate := range validAttendanceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAttendanceStatus converts raw input into AttendanceStatus.
func ParseAttendanceStatus(value string) (AttendanceStatus, error) {
	for _, candidate := range validAttendanceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attendance status %q", value)
}
