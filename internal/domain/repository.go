package domain

// SettingsRepository is a secondary port that defines how to persist preferences.
// This interface is defined in the domain layer and implemented by adapters.
type SettingsRepository interface {
	Load() (Settings, error)
	Save(settings Settings) error
}

// Alerter is a secondary port notified when a countdown reaches zero on its own.
type Alerter interface {
	Alert(lang Language) error
}
