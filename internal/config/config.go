// Package config loads afval-ical settings from defaults, an optional config
// file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/klabast/wb-services/afval-ical/internal/afvalwijzer"
	"github.com/klabast/wb-services/afval-ical/internal/app"
	"github.com/klabast/wb-services/afval-ical/internal/logger"
)

// EnvPrefix prefixes every environment variable, e.g. AFVAL_SOURCE_BASE_URL
const EnvPrefix = "AFVAL"

// Config is the complete application configuration
type Config struct {
	Source   afvalwijzer.Config `mapstructure:"source"`
	Calendar CalendarConfig     `mapstructure:"calendar"`
	Server   ServerConfig       `mapstructure:"server"`
	Logger   logger.Config      `mapstructure:"logger"`
}

// CalendarConfig holds the fixed document metadata of generated calendars
type CalendarConfig struct {
	Name      string `mapstructure:"name"`
	Timezone  string `mapstructure:"timezone"`
	ProductID string `mapstructure:"product_id"`
}

// ServerConfig holds the settings of the subscription server
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// Metadata returns the calendar metadata for a page title and source URL
func (c CalendarConfig) Metadata(title, sourceURL string) app.Metadata {
	return app.Metadata{
		ProductID:   c.ProductID,
		Name:        c.Name,
		Timezone:    c.Timezone,
		Description: title,
		URL:         sourceURL,
	}
}

// Load reads the configuration. cfgFile may be empty, in which case
// config.yaml is looked up in "." and "./config"; a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	// .env is optional; existing environment variables take precedence
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source.SetDefaults()
	cfg.Logger.SetDefaults()

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.base_url", afvalwijzer.DefaultBaseURL)
	v.SetDefault("source.user_agent", afvalwijzer.DefaultUserAgent)
	v.SetDefault("source.timeout", afvalwijzer.DefaultTimeout)

	v.SetDefault("calendar.name", app.ICSCalendarName)
	v.SetDefault("calendar.timezone", app.ICSTimezone)
	v.SetDefault("calendar.product_id", app.ICSProductID)

	v.SetDefault("server.address", ":8080")

	v.SetDefault("logger.level", logger.DefaultLevel)
	v.SetDefault("logger.format", logger.DefaultFormat)
	v.SetDefault("logger.output_paths", []string{"stderr"})
}
