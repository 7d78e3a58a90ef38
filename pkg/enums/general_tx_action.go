package enums

import "fmt"

// GeneralTxAction is the action recorded on a general-inventory ledger row.
type GeneralTxAction string

const (
	GeneralTxActionIssue   GeneralTxAction = "issue"
	GeneralTxActionReturn  GeneralTxAction = "return"
	GeneralTxActionLost    GeneralTxAction = "lost"
	GeneralTxActionDamaged GeneralTxAction = "damaged"
	GeneralTxActionAdjust  GeneralTxAction = "adjust"
)

var validGeneralTxActions = []GeneralTxAction{
	GeneralTxActionIssue,
	GeneralTxActionReturn,
	GeneralTxActionLost,
	GeneralTxActionDamaged,
	GeneralTxActionAdjust,
}

// IsValid reports whether the value matches the canonical ledger action enum.
func (a GeneralTxAction) IsValid() bool {
	for _, candidate := range validGeneralTxActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseGeneralTxAction converts raw input into GeneralTxAction.
func ParseGeneralTxAction(value string) (GeneralTxAction, error) {
	for _, candidate := range validGeneralTxActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid general transaction action %q", value)
}
