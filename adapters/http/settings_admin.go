package socialhttp

import (
	"context"
	"errors"
	"net/http"

	core "github.com/open-rails/sociallogin/core"
	"github.com/open-rails/sociallogin/lang"
	"github.com/open-rails/sociallogin/logger"
)

func (s *Service) handleSaveAdminPOST(w http.ResponseWriter, r *http.Request) {
	if !s.allow(r, RLSettingsSaveAdmin) {
		tooMany(w)
		return
	}
	var in core.AdminSettings
	if err := decodeJSON(r, &in); err != nil {
		s.metrics.ObserveSave("invalid_request")
		badRequest(w, "invalid_request")
		return
	}
	if err := s.svc.SaveAdmin(r.Context(), in); err != nil {
		var ve *core.ValidationError
		if errors.As(err, &ve) {
			s.metrics.ObserveSave("rejected")
			writeJSON(w, http.StatusOK, messageResp{Message: ValidationMessage(r.Context(), ve)})
			return
		}
		s.metrics.ObserveSave("failed")
		logger.From(r.Context()).Error("save admin settings", logger.Err(err))
		serverErr(w, "settings_save_failed")
		return
	}
	s.metrics.ObserveSave("saved")
	writeJSON(w, http.StatusOK, successResp{Success: true})
}

func (s *Service) handleAdminGET(w http.ResponseWriter, r *http.Request) {
	if !s.allow(r, RLSettingsLoadAdmin) {
		tooMany(w)
		return
	}
	settings, err := s.svc.LoadAdmin(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("load admin settings", logger.Err(err))
		serverErr(w, "settings_load_failed")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ValidationMessage localizes a provider validation error for the request language.
func ValidationMessage(ctx context.Context, ve *core.ValidationError) string {
	if ve.Kind == core.DuplicateTitle {
		return lang.Sprintf(ctx, lang.MsgDuplicateProviderTitle, ve.Title)
	}
	return lang.Sprintf(ctx, lang.MsgInvalidProviderTitle, ve.Title)
}
