package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hmranwar/guardpost-backend/api/responses"
	"github.com/hmranwar/guardpost-backend/api/validators"
	"github.com/hmranwar/guardpost-backend/internal/payroll"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
)

func PayrollSheetList(svc payroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sheets, err := svc.List(r.Context(), payroll.ListFilter{
			Month:      validators.OptionalQueryString(r, "month"),
			EmployeeID: validators.OptionalQueryString(r, "employee_id"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sheets)
	}
}

func PayrollSheetGet(svc payroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "sheetID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sheet, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sheet)
	}
}

func PayrollSheetCreate(svc payroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body payroll.SheetInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sheet, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sheet)
	}
}

func PayrollSheetUpdate(svc payroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "sheetID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body payroll.SheetUpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sheet, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sheet)
	}
}

// PayrollSheetFinalize flips a draft to finalized; a second call is a
// state conflict.
func PayrollSheetFinalize(svc payroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "sheetID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sheet, err := svc.Finalize(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sheet)
	}
}

func PayrollSheetDelete(svc payroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "sheetID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func PayrollMonthSummary(svc payroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := chi.URLParam(r, "month")
		if month == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "month is required"))
			return
		}

		summary, err := svc.MonthSummary(r.Context(), month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
