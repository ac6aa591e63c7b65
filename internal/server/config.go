package server

import (
	"errors"
	"fmt"

	"github.com/goto/salt/config"

	"github.com/goto/oaflow/core/application"
	"github.com/goto/oaflow/core/resolver"
	"github.com/goto/oaflow/internal/store"
	"github.com/goto/oaflow/jobs"
	"github.com/goto/oaflow/pkg/opentelemetry"
	"github.com/goto/oaflow/plugins/archives"
	"github.com/goto/oaflow/plugins/directory/http"
	"github.com/goto/oaflow/plugins/directory/static"
	"github.com/goto/oaflow/plugins/notifiers"
)

const (
	DirectoryProviderStatic = "static"
	DirectoryProviderHTTP   = "http"
)

type DirectoryConfig struct {
	Provider string        `mapstructure:"provider" default:"static"`
	Static   static.Config `mapstructure:"static"`
	HTTP     http.Config   `mapstructure:"http"`
}

type ReadonlyNotificationConfig struct {
	// Criteria is evaluated against the approved application, e.g. "application.amount > 100000"
	Criteria string `mapstructure:"criteria"`
}

type Config struct {
	Version              string                       `mapstructure:"version"`
	LogLevel             string                       `mapstructure:"log_level" default:"info"`
	DB                   store.Config                 `mapstructure:"db"`
	Notifier             notifiers.Config             `mapstructure:"notifier"`
	Directory            DirectoryConfig              `mapstructure:"directory"`
	Resolver             resolver.Config              `mapstructure:"resolver"`
	Archive              archives.Config              `mapstructure:"archive"`
	ReadonlyNotification ReadonlyNotificationConfig   `mapstructure:"readonly_notification"`
	Jobs                 map[jobs.Type]jobs.JobConfig `mapstructure:"jobs"`
	Telemetry            opentelemetry.Config         `mapstructure:"telemetry"`
}

func LoadConfig(configFile string) (Config, error) {
	var cfg Config
	loader := config.NewLoader(config.WithFile(configFile))

	if err := loader.Load(&cfg); err != nil {
		if errors.As(err, &config.ConfigFileNotFoundError{}) {
			fmt.Println(err)
			return withFallbacks(cfg), nil
		}
		return Config{}, err
	}

	return withFallbacks(cfg), nil
}

func withFallbacks(cfg Config) Config {
	if cfg.ReadonlyNotification.Criteria == "" {
		cfg.ReadonlyNotification.Criteria = application.DefaultReadonlyCriteria
	}
	if cfg.Telemetry.ServiceVersion == "" {
		cfg.Telemetry.ServiceVersion = cfg.Version
	}
	return cfg
}
