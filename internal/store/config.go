package store

import (
	"fmt"
	"net/url"
)

type Config struct {
	Host     string `mapstructure:"host" default:"localhost"`
	User     string `mapstructure:"user" default:"oaflow"`
	Password string `mapstructure:"password" default:""`
	Name     string `mapstructure:"name" default:"oaflow"`
	Port     string `mapstructure:"port" default:"5432"`
	SslMode  string `mapstructure:"sslmode" default:"disable"`
	LogLevel string `mapstructure:"log_level" default:"silent"`

	MaxOpenConns int `mapstructure:"max_open_conns" default:"10"`
	MaxIdleConns int `mapstructure:"max_idle_conns" default:"5"`
}

// DSN returns the key/value connection string understood by pgx
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SslMode,
	)
}

// MigrationURL returns the url form used by the migration driver
func (c Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SslMode}}.Encode(),
	}
	return u.String()
}
