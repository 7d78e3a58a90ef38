package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/api/responses"
	"github.com/hmranwar/guardpost-backend/api/validators"
	"github.com/hmranwar/guardpost-backend/internal/leaveperiods"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
)

func LeavePeriodList(svc leaveperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := leaveperiods.ListFilter{
			EmployeeID: validators.OptionalQueryString(r, "employee_id"),
		}
		activeOn, err := validators.ParseQueryDate(r, "active_on", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !activeOn.IsZero() {
			filter.ActiveOn = &activeOn
		}

		periods, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, periods)
	}
}

func LeavePeriodCreate(svc leaveperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body leaveperiods.CreateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		period, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, period)
	}
}

func LeavePeriodUpdate(svc leaveperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body leaveperiods.UpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		period, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, period)
	}
}

func LeavePeriodDelete(svc leaveperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
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

// LeavePeriodAlerts lists periods ending soon; as_of defaults to today.
func LeavePeriodAlerts(svc leaveperiods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf, err := validators.ParseQueryDate(r, "as_of", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if asOf.IsZero() {
			asOf = types.DateOf(time.Now())
		}

		alerts, err := svc.Alerts(r.Context(), asOf, validators.OptionalQueryString(r, "employee_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, alerts)
	}
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
