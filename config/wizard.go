package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

// WizardConfiguration holds the settings for in-memory wizard sessions.
// Sessions are ephemeral: losing the process loses all progress.
type WizardConfiguration struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

var (
	wizardDefaultsOnce sync.Once
	wizardConfigOnce   sync.Once
	wizardConfig       *WizardConfiguration
)

func initWizardDefaults() {
	wizardDefaultsOnce.Do(func() {
		viper.SetDefault("WIZARD_SESSION_TTL", 120)  // minutes
		viper.SetDefault("WIZARD_SWEEP_INTERVAL", 5) // minutes
	})
}

// WizardConfig returns the wizard session configuration.
func WizardConfig() *WizardConfiguration {
	initWizardDefaults()

	wizardConfigOnce.Do(func() {
		wizardConfig = &WizardConfiguration{
			SessionTTL:    time.Duration(viper.GetInt("WIZARD_SESSION_TTL")) * time.Minute,
			SweepInterval: time.Duration(viper.GetInt("WIZARD_SWEEP_INTERVAL")) * time.Minute,
		}
	})
	return wizardConfig
}
