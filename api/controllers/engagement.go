package controllers

import (
	"context"
	"net/http"

	"github.com/Viniciusgrn/forFunOrganizado/api/responses"
	"github.com/Viniciusgrn/forFunOrganizado/api/validators"
	productsvc "github.com/Viniciusgrn/forFunOrganizado/internal/products"
	pkgerrors "github.com/Viniciusgrn/forFunOrganizado/pkg/errors"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/logger"
)

// RecordView bumps the view counter. A browsing hiccup must never break the
// storefront, so only a missing product is surfaced; storage errors are
// logged and answered with success.
func RecordView(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return recordEngagement(svc.RecordView, "record view failed", logg)
}

// RecordClick bumps the outbound link counter with the same best-effort
// contract as RecordView.
func RecordClick(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return recordEngagement(svc.RecordClick, "record click failed", logg)
}

func recordEngagement(record func(ctx context.Context, id uint) error, failureMsg string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := record(r.Context(), id); err != nil {
			if pkgerrors.IsNotFound(err) {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if logg != nil {
				logg.Error(r.Context(), failureMsg, err)
			}
		}
		responses.WriteSuccess(w, map[string]any{"id": id})
	}
}
