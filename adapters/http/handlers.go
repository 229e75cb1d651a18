package socialhttp

import (
	"net/http"

	core "github.com/open-rails/sociallogin/core"
)

// Handler serves the settings routes under the configured base path
// (default /apps/sociallogin). Mount it on the host mux at that path:
//
//	mux.Handle("/apps/sociallogin/", svc.Handler())
func (s *Service) Handler() http.Handler {
	if s == nil || s.svc == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { serverErr(w, "sociallogin_not_initialized") })
	}
	base := s.svc.Config().BasePath
	mux := http.NewServeMux()

	required := Required(s.verifier)
	admin := func(h http.HandlerFunc) http.Handler { return required(RequireAdmin(s.adminRole)(h)) }

	mux.Handle("POST "+base+"/settings/save-admin", admin(s.handleSaveAdminPOST))
	mux.Handle("GET "+base+"/settings/admin", admin(s.handleAdminGET))
	mux.Handle("GET "+base+"/settings/personal", required(http.HandlerFunc(s.handlePersonalGET)))
	mux.Handle("GET "+base+"/disconnect-social/{login}", required(http.HandlerFunc(s.handleDisconnectGET)))

	var h http.Handler = mux
	h = LanguageMiddleware(s.langCfg)(h)
	h = RequestLogger()(h)
	return s.withRequestMeta(h)
}

// withRequestMeta records the caller's address and agent for settings events.
func (s *Service) withRequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ipFn := s.clientIP
		if ipFn == nil {
			ipFn = DefaultClientIP()
		}
		ctx := core.WithRequestMeta(r.Context(), ipFn(r), r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
