package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hmranwar/guardpost-backend/api/responses"
	"github.com/hmranwar/guardpost-backend/api/validators"
	"github.com/hmranwar/guardpost-backend/internal/generalinv"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
)

func GeneralItemList(svc generalinv.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GeneralItemGet(svc generalinv.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.GetItem(r.Context(), chi.URLParam(r, "itemCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func GeneralItemCreate(svc generalinv.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body generalinv.ItemInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func GeneralItemUpdate(svc generalinv.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body generalinv.ItemUpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItem(r.Context(), chi.URLParam(r, "itemCode"), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func GeneralItemDelete(svc generalinv.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteItem(r.Context(), chi.URLParam(r, "itemCode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func GeneralCategoryList(svc generalinv.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// GeneralStockMove handles issue/return: quantity moves and a ledger row
// lands in the same transaction.
func GeneralStockMove(svc generalinv.Service, logg *logger.Logger, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body generalinv.MovementInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemCode := chi.URLParam(r, "itemCode")
		var item any
		var err error
		switch action {
		case "issue":
			item, err = svc.Issue(r.Context(), itemCode, body)
		case "return":
			item, err = svc.Return(r.Context(), itemCode, body)
		case "lost":
			item, err = svc.ReportLost(r.Context(), itemCode, body)
		default:
			item, err = svc.ReportDamaged(r.Context(), itemCode, body)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// GeneralStockAdjust sets the absolute on-hand quantity.
func GeneralStockAdjust(svc generalinv.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body generalinv.AdjustInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Adjust(r.Context(), chi.URLParam(r, "itemCode"), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func GeneralTransactionList(svc generalinv.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txs, err := svc.ListTransactions(r.Context(), generalinv.TxFilter{
			ItemCode:   validators.OptionalQueryString(r, "item_code"),
			EmployeeID: validators.OptionalQueryString(r, "employee_id"),
			Limit:      limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txs)
	}
}
