package cli

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goto/oaflow/internal/server"
	"github.com/goto/oaflow/pkg/log"
	"github.com/goto/oaflow/pkg/opentelemetry"
	"github.com/goto/oaflow/plugins/notifiers"
)

type runtime struct {
	config   server.Config
	logger   log.Logger
	notifier notifiers.Client
	services *server.Services

	shutdownTelemetry func() error
}

func loadConfig(cmd *cobra.Command) (server.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return server.Config{}, fmt.Errorf("getting config flag value: %w", err)
	}
	config, err := server.LoadConfig(configFile)
	if err != nil {
		return server.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return config, nil
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	config, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := log.NewCtxLogger(config.LogLevel)
	shutdown, err := opentelemetry.Init(cmd.Context(), config.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	notifier, err := notifiers.NewClient(&config.Notifier, logger)
	if err != nil {
		return nil, err
	}

	services, err := server.InitServices(server.ServiceDeps{
		Config:    &config,
		Logger:    logger,
		Validator: validator.New(),
		Notifier:  notifier,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing services: %w", err)
	}

	return &runtime{
		config:            config,
		logger:            logger,
		notifier:          notifier,
		services:          services,
		shutdownTelemetry: shutdown,
	}, nil
}

// Close waits for detached side effects before releasing the database and telemetry
func (r *runtime) Close() {
	ctx := context.Background()
	r.services.ApplicationService.Wait()
	if err := r.services.Close(); err != nil {
		r.logger.Error(ctx, "failed to close store", "error", err)
	}
	if err := r.shutdownTelemetry(); err != nil {
		r.logger.Error(ctx, "failed to shutdown telemetry", "error", err)
	}
}

func printYAML(cmd *cobra.Command, v interface{}) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
