package config

import (
	"sync"

	"github.com/spf13/viper"
)

// ServerConfiguration holds the HTTP server settings.
type ServerConfiguration struct {
	Debug       bool
	Host        string
	Port        string
	Environment string
	Timezone    string
	SentryDSN   string

	// Serverless deployments get no writable working directory, so
	// transient upload copies go to /tmp instead of ./uploads.
	Serverless bool
	UploadDir  string

	RateLimit uint
	RedisURL  string
}

var (
	serverDefaultsOnce sync.Once
	serverConfigOnce   sync.Once
	serverConfig       *ServerConfiguration
)

func initServerDefaults() {
	serverDefaultsOnce.Do(func() {
		viper.SetDefault("DEBUG", true)
		viper.SetDefault("HOST", "0.0.0.0")
		viper.SetDefault("SERVER_PORT", "5000")
		viper.SetDefault("ENVIRONMENT", "development")
		viper.SetDefault("SERVER_TIMEZONE", "UTC")
		viper.SetDefault("SERVERLESS", false)
		viper.SetDefault("UPLOAD_DIR", "uploads")
		viper.SetDefault("RATE_LIMIT", 20)
	})
}

// ServerConfig returns the server configuration. The config is built once
// and cached.
func ServerConfig() *ServerConfiguration {
	initServerDefaults()

	serverConfigOnce.Do(func() {
		uploadDir := viper.GetString("UPLOAD_DIR")
		if viper.GetBool("SERVERLESS") {
			uploadDir = "/tmp"
		}

		serverConfig = &ServerConfiguration{
			Debug:       viper.GetBool("DEBUG"),
			Host:        viper.GetString("HOST"),
			Port:        viper.GetString("SERVER_PORT"),
			Environment: viper.GetString("ENVIRONMENT"),
			Timezone:    viper.GetString("SERVER_TIMEZONE"),
			SentryDSN:   viper.GetString("SENTRY_DSN"),
			Serverless:  viper.GetBool("SERVERLESS"),
			UploadDir:   uploadDir,
			RateLimit:   viper.GetUint("RATE_LIMIT"),
			RedisURL:    viper.GetString("REDIS_URL"),
		}
	})
	return serverConfig
}
