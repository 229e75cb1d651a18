package lang

// Message keys. English text doubles as the key.
const (
	MsgDuplicateProviderTitle = `Duplicate provider title "%s"`
	MsgInvalidProviderTitle   = `Invalid provider title "%s". Allowed characters "0-9a-z_.@-"`

	MsgSocialLogin        = "Social login"
	MsgAvailableProviders = "Log in with"
	MsgConnectedLogins    = "Connected logins"
	MsgNoConnectedLogins  = "No social logins connected yet."
	MsgDisconnect         = "Disconnect"
)

var entries = map[string]map[string]string{
	MsgDuplicateProviderTitle: {"de": `Doppelter Anbieter-Titel "%s"`},
	MsgInvalidProviderTitle:   {"de": `Ungültiger Anbieter-Titel "%s". Erlaubte Zeichen "0-9a-z_.@-"`},
	MsgSocialLogin:            {"de": "Social Login"},
	MsgAvailableProviders:     {"de": "Anmelden mit"},
	MsgConnectedLogins:        {"de": "Verbundene Konten"},
	MsgNoConnectedLogins:      {"de": "Noch keine Social Logins verbunden."},
	MsgDisconnect:             {"de": "Trennen"},
}
