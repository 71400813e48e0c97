package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

func init() {
	if err := SetupConfig(); err != nil {
		panic(fmt.Sprintf("config SetupConfig() error: %s", err))
	}
}

// SetupConfig loads configuration from the .env file and the process
// environment. Environment variables always win over file values.
func SetupConfig() error {
	viper.AddConfigPath("../../..")
	viper.AddConfigPath("../..")
	viper.AddConfigPath("..")
	viper.AddConfigPath(".")

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	viper.SetConfigName(envFilePath)
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine in containerized deployments where
		// everything arrives through the environment.
		fmt.Printf("config file not loaded: %s\n", err)
	}

	return nil
}
