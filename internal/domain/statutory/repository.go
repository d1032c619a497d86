package statutory

import "context"

// SettingsRepository loads configured rate/cap overrides. Callers fall
// back to DefaultConfig when no row exists.
type SettingsRepository interface {
	GetConfig(ctx context.Context) (Config, error)
}
