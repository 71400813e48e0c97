package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

// KycaidConfiguration holds the settings for the KYCAID provider
// integration. Two credentials are carried, one per mode; the active one
// is chosen at request time by the mode store.
type KycaidConfiguration struct {
	BaseURL    string
	TestAPIKey string
	ProdAPIKey string

	DefaultMode    string
	RequestTimeout time.Duration

	// Verification polling
	PollInterval    time.Duration
	PollMaxAttempts int

	// Upload handling
	MaxUploadSize     int64
	CountriesCacheTTL time.Duration
}

var (
	kycaidDefaultsOnce sync.Once
	kycaidConfigOnce   sync.Once
	kycaidConfig       *KycaidConfiguration
)

func initKycaidDefaults() {
	kycaidDefaultsOnce.Do(func() {
		viper.SetDefault("KYCAID_BASE_URL", "https://api.kycaid.com")
		viper.SetDefault("KYCAID_DEFAULT_MODE", "test")
		viper.SetDefault("KYCAID_REQUEST_TIMEOUT", 30) // seconds
		viper.SetDefault("VERIFICATION_POLL_INTERVAL", 10)
		viper.SetDefault("VERIFICATION_POLL_MAX_ATTEMPTS", 360)
		viper.SetDefault("MAX_UPLOAD_SIZE", 10<<20)
		viper.SetDefault("COUNTRIES_CACHE_TTL", 60) // minutes
	})
}

// KycaidConfig returns the KYCAID provider configuration.
func KycaidConfig() *KycaidConfiguration {
	initKycaidDefaults()

	kycaidConfigOnce.Do(func() {
		kycaidConfig = &KycaidConfiguration{
			BaseURL:           viper.GetString("KYCAID_BASE_URL"),
			TestAPIKey:        viper.GetString("KYCAID_TEST_API_KEY"),
			ProdAPIKey:        viper.GetString("KYCAID_PROD_API_KEY"),
			DefaultMode:       viper.GetString("KYCAID_DEFAULT_MODE"),
			RequestTimeout:    time.Duration(viper.GetInt("KYCAID_REQUEST_TIMEOUT")) * time.Second,
			PollInterval:      time.Duration(viper.GetInt("VERIFICATION_POLL_INTERVAL")) * time.Second,
			PollMaxAttempts:   viper.GetInt("VERIFICATION_POLL_MAX_ATTEMPTS"),
			MaxUploadSize:     viper.GetInt64("MAX_UPLOAD_SIZE"),
			CountriesCacheTTL: time.Duration(viper.GetInt("COUNTRIES_CACHE_TTL")) * time.Minute,
		}
	})
	return kycaidConfig
}
