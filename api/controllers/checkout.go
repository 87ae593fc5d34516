package controllers

import (
	"net/http"

	"github.com/saikrishna-dev/mandimitra-backend/api/responses"
	"github.com/saikrishna-dev/mandimitra-backend/api/validators"
	"github.com/saikrishna-dev/mandimitra-backend/internal/checkout"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
)

// Checkout converts the vendor's cart into per-wholesaler orders.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkout.Request
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		result, err := svc.Checkout(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
