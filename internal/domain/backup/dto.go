package backup

type ImportResult struct {
	Records          int  `json:"records"`
	SettingsRestored bool `json:"settings_restored"`
	LocationRestored bool `json:"location_restored"`
}
