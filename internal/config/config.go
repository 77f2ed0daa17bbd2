package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Export
	}

	Database struct {
		Path string
	}
	Export struct {
		Colors     string // Comma-separated marker labels for color codes 0..N
		NoColors   bool
		Debug      bool
		OutputPath string // Write the document here instead of stdout
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("kobo_database_path", DefaultDatabasePath)
	v.SetDefault("kobo_colors", DefaultColorMarkers)
	v.SetDefault("kobo_no_colors", false)
	v.SetDefault("kobo_debug", false)
	v.SetDefault("kobo_output_path", "")

	return &Config{
		Database: Database{
			Path: v.GetString("KOBO_DATABASE_PATH"),
		},
		Export: Export{
			Colors:     v.GetString("KOBO_COLORS"),
			NoColors:   v.GetBool("KOBO_NO_COLORS"),
			Debug:      v.GetBool("KOBO_DEBUG"),
			OutputPath: v.GetString("KOBO_OUTPUT_PATH"),
		},
	}
}
