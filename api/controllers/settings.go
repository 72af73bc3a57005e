package controllers

import (
	"net/http"

	"github.com/sivermarket/siver-backend/api/responses"
	"github.com/sivermarket/siver-backend/api/validators"
	"github.com/sivermarket/siver-backend/internal/consolidation"
	"github.com/sivermarket/siver-backend/pkg/logger"
)

func GetConsolidationSettings(svc consolidation.SettingsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

func UpdateConsolidationSettings(svc consolidation.SettingsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req consolidation.UpdateSettingsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.Update(r.Context(), req, actorRef(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}
