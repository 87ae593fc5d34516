package controllers

import (
	"net/http"

	"github.com/saikrishna-dev/mandimitra-backend/api/responses"
	"github.com/saikrishna-dev/mandimitra-backend/api/validators"
	"github.com/saikrishna-dev/mandimitra-backend/internal/voice"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
)

// VoiceInterpret turns a transcript into a product command, optionally adding
// the match straight to the vendor's cart.
func VoiceInterpret(svc voice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "voice service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body voice.InterpretRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Interpret(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// VoiceCommands lists the recognizable produce commands and their aliases.
func VoiceCommands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type command struct {
			Key     string   `json:"key"`
			Name    string   `json:"name"`
			NameHi  string   `json:"nameHi"`
			NameTe  string   `json:"nameTe"`
			Aliases []string `json:"aliases"`
		}
		catalog := voice.Commands()
		out := make([]command, 0, len(catalog))
		for _, cmd := range catalog {
			out = append(out, command{
				Key:     cmd.Key,
				Name:    cmd.Name,
				NameHi:  cmd.NameHi,
				NameTe:  cmd.NameTe,
				Aliases: cmd.Aliases,
			})
		}
		responses.WriteSuccess(w, map[string]any{"commands": out})
	}
}
