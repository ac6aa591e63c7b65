package archives

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/goto/oaflow/plugins/archives/gcs"
	"github.com/goto/oaflow/plugins/archives/local"
	"github.com/goto/oaflow/plugins/archives/oss"
)

const (
	ProviderTypeGCS   = "gcs"
	ProviderTypeOSS   = "oss"
	ProviderTypeLocal = "local"
)

var ErrInvalidProvider = errors.New("invalid archive provider type")

// Archiver stores immutable snapshots of finished applications
type Archiver interface {
	Put(ctx context.Context, key string, data []byte) error
}

type Config struct {
	Provider string `mapstructure:"provider" default:"local"`
	// Prefix is prepended to every object key
	Prefix string `mapstructure:"prefix"`

	GCS   gcs.Config   `mapstructure:"gcs"`
	OSS   oss.Config   `mapstructure:"oss"`
	Local local.Config `mapstructure:"local"`
}

func NewArchiver(ctx context.Context, config Config) (Archiver, error) {
	if config.Provider == "" {
		config.Provider = ProviderTypeLocal
	}
	v := validator.New()

	switch config.Provider {
	case ProviderTypeGCS:
		if err := v.Struct(config.GCS); err != nil {
			return nil, err
		}
		a, err := gcs.NewArchiver(ctx, config.GCS, config.Prefix)
		if err != nil {
			return nil, fmt.Errorf("initializing gcs archiver: %w", err)
		}
		return a, nil
	case ProviderTypeOSS:
		if err := v.Struct(config.OSS); err != nil {
			return nil, err
		}
		a, err := oss.NewArchiver(config.OSS, config.Prefix)
		if err != nil {
			return nil, fmt.Errorf("initializing oss archiver: %w", err)
		}
		return a, nil
	case ProviderTypeLocal:
		return local.NewArchiver(config.Local, config.Prefix)
	}

	return nil, ErrInvalidProvider
}
