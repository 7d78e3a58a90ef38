package enums

import "fmt"

// RestrictedTxAction is the action recorded on a restricted-inventory ledger row.
type RestrictedTxAction string

const (
	RestrictedTxActionIssue  RestrictedTxAction = "issue"
	RestrictedTxActionReturn RestrictedTxAction = "return"
)

var validRestrictedTxActions = []RestrictedTxAction{
	RestrictedTxActionIssue,
	RestrictedTxActionReturn,
}

// IsValid reports whether the value matches the canonical ledger action enum.
func (a RestrictedTxAction) IsValid() bool {
	for _, candidate := range validRestrictedTxActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseRestrictedTxAction converts raw input into RestrictedTxAction.
func ParseRestrictedTxAction(value string) (RestrictedTxAction, error) {
	for _, candidate := range validRestrictedTxActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid restricted transaction action %q", value)
}
