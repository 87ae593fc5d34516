package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/api/responses"
	"github.com/saikrishna-dev/mandimitra-backend/api/validators"
	"github.com/saikrishna-dev/mandimitra-backend/internal/users"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
)

type userReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByRole(ctx context.Context, role enums.Role) ([]models.User, error)
	UpdatePreferredLanguage(ctx context.Context, id uuid.UUID, lang enums.Language) error
}

type updateLanguageRequest struct {
	PreferredLanguage string `json:"preferredLanguage" validate:"required"`
}

// CurrentUser returns the authenticated user's profile.
func CurrentUser(repo userReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := repo.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, users.FromModel(user))
	}
}

// UpdateLanguage switches the authenticated user's preferred language.
func UpdateLanguage(repo userReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateLanguageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lang, err := enums.ParseLanguage(body.PreferredLanguage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported language"))
			return
		}

		if err := repo.UpdatePreferredLanguage(r.Context(), userID, lang); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update language"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"preferredLanguage": string(lang)})
	}
}

// Wholesalers lists every wholesaler account so vendors can browse sellers.
func Wholesalers(repo userReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := repo.ListByRole(r.Context(), enums.RoleWholesaler)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wholesalers"))
			return
		}

		out := make([]*users.UserDTO, 0, len(found))
		for i := range found {
			out = append(out, users.FromModel(&found[i]))
		}
		responses.WriteSuccess(w, map[string]any{"wholesalers": out})
	}
}
