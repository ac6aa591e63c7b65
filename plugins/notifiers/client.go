package notifiers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mcuadros/go-defaults"

	"github.com/goto/oaflow/domain"
	pkghttp "github.com/goto/oaflow/pkg/http"
	"github.com/goto/oaflow/pkg/log"
	"github.com/goto/oaflow/pkg/opentelemetry/otelhttpclient"
	"github.com/goto/oaflow/plugins/notifiers/lark"
)

type Client interface {
	Notify(context.Context, []domain.Notification) []error
}

const (
	ProviderTypeLark = "lark"
	ProviderTypeLog  = "log"
)

var ErrInvalidProvider = errors.New("invalid notifier provider type")

type Config struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=lark log"`

	// lark
	Host       string             `mapstructure:"host"`
	Workspace  lark.LarkWorkspace `mapstructure:"workspace" validate:"required_if=Provider lark"`
	RetryCount int                `mapstructure:"retry_count" default:"2"`
	Timeout    time.Duration      `mapstructure:"timeout" default:"10s"`

	// custom messages
	Messages domain.NotificationMessages `mapstructure:"messages"`
	// Variables are merged into every message, e.g. console_url
	Variables map[string]interface{} `mapstructure:"variables"`
}

func NewClient(config *Config, logger log.Logger) (Client, error) {
	switch config.Provider {
	case ProviderTypeLark:
		defaults.SetDefaults(config)
		if err := validator.New().Struct(config); err != nil {
			return nil, err
		}
		httpClient := otelhttpclient.New("lark", &http.Client{
			Timeout: config.Timeout,
			Transport: &pkghttp.RetryableTransport{
				Transport:  http.DefaultTransport,
				RetryCount: config.RetryCount,
			},
		})
		return lark.NewNotifier(&lark.Config{
			Host:      config.Host,
			Workspace: config.Workspace,
			Messages:  config.Messages,
			Variables: config.Variables,
		}, httpClient, logger), nil
	case ProviderTypeLog, "":
		return &logNotifier{logger: logger}, nil
	}

	return nil, ErrInvalidProvider
}

// logNotifier writes notifications to the application log instead of delivering them
type logNotifier struct {
	logger log.Logger
}

func (n *logNotifier) Notify(ctx context.Context, items []domain.Notification) []error {
	for _, item := range items {
		n.logger.Info(ctx, "notification", "user", item.User, "type", item.Message.Type, "variables", item.Message.Variables)
	}
	return nil
}
