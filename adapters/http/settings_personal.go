package socialhttp

import (
	"net/http"

	"github.com/open-rails/sociallogin/logger"
	"github.com/open-rails/sociallogin/view"
)

func (s *Service) handlePersonalGET(w http.ResponseWriter, r *http.Request) {
	if !s.allow(r, RLSettingsPersonal) {
		tooMany(w)
		return
	}
	cl, err := getClaims(r.Context())
	if err != nil {
		unauthorized(w, "unauthorized")
		return
	}
	pv, err := s.svc.PersonalView(r.Context(), cl.UserID)
	if err != nil {
		logger.From(r.Context()).Error("build personal view", logger.Err(err))
		serverErr(w, "personal_view_failed")
		return
	}
	html, err := s.renderer.Render("personal", view.NewPersonalPage(r.Context(), pv))
	if err != nil {
		logger.From(r.Context()).Error("render personal view", logger.Err(err))
		serverErr(w, "render_failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
