package opentelemetry

import "time"

const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
)

type OTLPConfig struct {
	Headers  map[string]string `mapstructure:"headers"`
	Endpoint string            `mapstructure:"endpoint" default:"127.0.0.1:4317"`
}

type Config struct {
	Enabled        bool              `mapstructure:"enabled" default:"false"`
	ServiceName    string            `mapstructure:"service_name" default:"oaflow"`
	ServiceVersion string            `mapstructure:"service_version"`
	Labels         map[string]string `mapstructure:"labels"`
	// Exporter is either otlp or stdout, stdout only exports traces
	Exporter string     `mapstructure:"exporter" default:"stdout" validate:"oneof=otlp stdout"`
	OTLP     OTLPConfig `mapstructure:"otlp"`
	// SamplingFraction is a percentage, 0 keeps every trace
	SamplingFraction int           `mapstructure:"sampling_fraction"`
	MetricInterval   time.Duration `mapstructure:"metric_interval" default:"15s"`
}
