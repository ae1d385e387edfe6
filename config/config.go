// Package config wires viper: defaults for every download/extract setting,
// an optional config.yaml in the working directory, and the GITHUB_TOKEN
// environment variable.
package config

import (
	"github.com/spf13/viper"

	"github.com/goughy12/Get-GithubRelease/internal/extract"
	"github.com/goughy12/Get-GithubRelease/internal/logger"
)

func Init() {
	viper.SetConfigName("config") // config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	err := viper.ReadInConfig()
	if err != nil {
		logger.Log.Debug("no config file found; using defaults")
	}

	viper.SetDefault("download.folder", ".")
	viper.SetDefault("download.asset-pattern", "*")
	viper.SetDefault("download.tag", "latest")
	viper.SetDefault("extract.enabled", true)
	viper.SetDefault("extract.tool-path", extract.DefaultToolPath())
	viper.SetDefault("extract.delete-after", true)

	_ = viper.BindEnv("github.token", "GITHUB_TOKEN")
}
