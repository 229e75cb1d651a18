package core

import (
	"context"
	"fmt"

	"github.com/open-rails/sociallogin/logger"
)

// Disconnect removes login from userID's connected logins after checking the
// anti-forgery token, and returns the URL to redirect back to. Removing a
// login that is not connected is not an error.
func (s *Service) Disconnect(ctx context.Context, userID, login, requestToken string) (string, error) {
	id, err := s.tokens.spend(ctx, userID, requestToken)
	if err != nil {
		return "", err
	}
	if err := s.conns.DisconnectLogin(ctx, userID, login); err != nil {
		if rerr := s.tokens.Release(ctx, id); rerr != nil {
			logger.From(ctx).Warn("release request token", logger.Err(rerr))
		}
		return "", fmt.Errorf("disconnect login: %w", err)
	}
	s.logEvent(ctx, SettingsEvent{Event: SettingsEventLoginDisconnected, UserID: &userID, Login: &login})
	return s.PersonalSettingsURL(), nil
}

// PersonalSettingsURL is where the host shows the personal settings section.
func (s *Service) PersonalSettingsURL() string {
	return s.urls.LinkToRoute(RoutePersonalSettings, map[string]string{"section": "additional"})
}
