package socialhttp

// Rate limit bucket names.
const (
	RLSettingsSaveAdmin  = "settings_save_admin"
	RLSettingsLoadAdmin  = "settings_load_admin"
	RLSettingsPersonal   = "settings_personal"
	RLSettingsDisconnect = "settings_disconnect"
)
