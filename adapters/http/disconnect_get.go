package socialhttp

import (
	"errors"
	"net/http"

	core "github.com/open-rails/sociallogin/core"
	"github.com/open-rails/sociallogin/logger"
)

func (s *Service) handleDisconnectGET(w http.ResponseWriter, r *http.Request) {
	if !s.allow(r, RLSettingsDisconnect) {
		tooMany(w)
		return
	}
	cl, err := getClaims(r.Context())
	if err != nil {
		unauthorized(w, "unauthorized")
		return
	}
	login := r.PathValue("login")
	redirect, err := s.svc.Disconnect(r.Context(), cl.UserID, login, r.URL.Query().Get("requesttoken"))
	if err != nil {
		if errors.Is(err, core.ErrInvalidRequestToken) {
			s.metrics.ObserveDisconnect("invalid_request_token")
			forbidden(w, "invalid_request_token")
			return
		}
		s.metrics.ObserveDisconnect("failed")
		logger.From(r.Context()).Error("disconnect login", logger.Login(login), logger.Err(err))
		serverErr(w, "disconnect_failed")
		return
	}
	s.metrics.ObserveDisconnect("ok")
	http.Redirect(w, r, redirect, http.StatusFound)
}
