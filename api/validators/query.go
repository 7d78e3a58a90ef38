package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryDate reads a YYYY-MM-DD query parameter. A missing value is an
// error only when required; otherwise the zero Date comes back.
func ParseQueryDate(r *http.Request, key string, required bool) (types.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		if required {
			return types.Date{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter required").WithDetails(map[string]any{"field": key})
		}
		return types.Date{}, nil
	}
	day, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a date (YYYY-MM-DD)").WithDetails(map[string]any{"field": key})
	}
	return day, nil
}

// OptionalQueryString returns a pointer to the trimmed query value, or nil
// when the parameter is absent or blank.
// OptionalQueryString returns the trimmed query value, or nil when the
// parameter is absent or blank. Values are capped at 256 bytes.
func OptionalQueryString(r *http.Request, key string) *string {
	raw := SanitizeString(r.URL.Query().Get(key), 256)
	if raw == "" {
		return nil
	}
	return &raw
}
