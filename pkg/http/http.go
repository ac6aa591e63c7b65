package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validator "github.com/go-playground/validator/v10"
	defaults "github.com/mcuadros/go-defaults"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/goto/oaflow/pkg/opentelemetry/otelhttpclient"
)

const (
	AuthTypeBasic         = "basic"
	AuthTypeAPIKey        = "api_key"
	AuthTypeBearer        = "bearer"
	AuthTypeGoogleIDToken = "google_idtoken"
	AuthTypeGoogleOAuth2  = "google_oauth2"
)

var ErrMissingGoogleCredentials = errors.New("missing credentials for google_idtoken or google_oauth2 auth")

type AuthConfig struct {
	Type string `mapstructure:"type" json:"type" yaml:"type" validate:"required,oneof=basic api_key bearer google_idtoken google_oauth2"`

	// basic auth
	Username string `mapstructure:"username,omitempty" json:"username,omitempty" yaml:"username,omitempty" validate:"required_if=Type basic"`
	Password string `mapstructure:"password,omitempty" json:"password,omitempty" yaml:"password,omitempty" validate:"required_if=Type basic"`

	// api key
	In    string `mapstructure:"in,omitempty" json:"in,omitempty" yaml:"in,omitempty" validate:"required_if=Type api_key,omitempty,oneof=query header"`
	Key   string `mapstructure:"key,omitempty" json:"key,omitempty" yaml:"key,omitempty" validate:"required_if=Type api_key"`
	Value string `mapstructure:"value,omitempty" json:"value,omitempty" yaml:"value,omitempty" validate:"required_if=Type api_key"`

	// bearer
	Token string `mapstructure:"token,omitempty" json:"token,omitempty" yaml:"token,omitempty" validate:"required_if=Type bearer"`

	// google_idtoken
	Audience string `mapstructure:"audience,omitempty" json:"audience,omitempty" yaml:"audience,omitempty" validate:"required_if=Type google_idtoken"`
	// CredentialsJSONBase64 accept a base64 encoded JSON stringified credentials
	CredentialsJSONBase64 string `mapstructure:"credentials_json_base64,omitempty" json:"credentials_json_base64,omitempty" yaml:"credentials_json_base64,omitempty"`
}

// ClientConfig describes a single outbound endpoint
type ClientConfig struct {
	Name       string            `mapstructure:"name" json:"name" yaml:"name" default:"http"`
	URL        string            `mapstructure:"url" json:"url" yaml:"url" validate:"required,url"`
	Headers    map[string]string `mapstructure:"headers,omitempty" json:"headers,omitempty" yaml:"headers,omitempty"`
	Auth       *AuthConfig       `mapstructure:"auth,omitempty" json:"auth,omitempty" yaml:"auth,omitempty" validate:"omitempty"`
	Method     string            `mapstructure:"method,omitempty" json:"method,omitempty" yaml:"method,omitempty" default:"GET" validate:"oneof=GET POST"`
	Body       string            `mapstructure:"body,omitempty" json:"body,omitempty" yaml:"body,omitempty"`
	Timeout    time.Duration     `mapstructure:"timeout" json:"timeout" yaml:"timeout" default:"10s"`
	RetryCount int               `mapstructure:"retry_count" json:"retry_count" yaml:"retry_count" default:"2"`

	HTTPClient *http.Client `mapstructure:"-" json:"-" yaml:"-"`
}

type Client struct {
	httpClient *http.Client
	config     *ClientConfig
}

type GoogleClientCreator struct{}

//go:generate mockery --name=ClientCreator --exported --with-expecter
type ClientCreator interface {
	GetHttpClientForGoogleOAuth2(ctx context.Context, creds []byte) (*http.Client, error)
	GetHttpClientForGoogleIdToken(ctx context.Context, creds []byte, audience string) (*http.Client, error)
}

// NewClient returns a traced client with retries that authenticates every request per config.Auth
func NewClient(config *ClientConfig, clientCreator ClientCreator) (*Client, error) {
	defaults.SetDefaults(config)
	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}

	httpClient := config.HTTPClient
	if config.Auth != nil && (config.Auth.Type == AuthTypeGoogleIDToken || config.Auth.Type == AuthTypeGoogleOAuth2) {
		if config.Auth.CredentialsJSONBase64 == "" {
			return nil, ErrMissingGoogleCredentials
		}
		creds, err := decodeCredentials(config.Auth.CredentialsJSONBase64)
		if err != nil {
			return nil, err
		}

		ctx := context.Background()
		if config.Auth.Type == AuthTypeGoogleIDToken {
			httpClient, err = clientCreator.GetHttpClientForGoogleIdToken(ctx, creds, config.Auth.Audience)
		} else {
			httpClient, err = clientCreator.GetHttpClientForGoogleOAuth2(ctx, creds)
		}
		if err != nil {
			return nil, err
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = &RetryableTransport{Transport: base, RetryCount: config.RetryCount}
	httpClient = otelhttpclient.New(config.Name, httpClient)
	if httpClient.Timeout == 0 {
		httpClient.Timeout = config.Timeout
	}

	return &Client{
		httpClient: httpClient,
		config:     config,
	}, nil
}

func (c *Client) URL() string {
	return c.config.URL
}

func (c *GoogleClientCreator) GetHttpClientForGoogleOAuth2(ctx context.Context, creds []byte) (*http.Client, error) {
	credsConfig, err := google.CredentialsFromJSON(ctx, creds, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, credsConfig.TokenSource), nil
}

func (c *GoogleClientCreator) GetHttpClientForGoogleIdToken(ctx context.Context, creds []byte, audience string) (*http.Client, error) {
	ts, err := idtoken.NewTokenSource(ctx, audience, idtoken.WithCredentialsJSON(creds))
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

func decodeCredentials(encodedCreds string) ([]byte, error) {
	v, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("decoding credentials_json_base64: %w", err)
	}
	return v, nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.config.Auth == nil {
		return
	}
	switch c.config.Auth.Type {
	case AuthTypeBasic:
		req.SetBasicAuth(c.config.Auth.Username, c.config.Auth.Password)
	case AuthTypeAPIKey:
		switch c.config.Auth.In {
		case "query":
			q := req.URL.Query()
			q.Add(c.config.Auth.Key, c.config.Auth.Value)
			req.URL.RawQuery = q.Encode()
		case "header":
			req.Header.Add(c.config.Auth.Key, c.config.Auth.Value)
		}
	case AuthTypeBearer:
		req.Header.Add("Authorization", "Bearer "+c.config.Auth.Token)
	}
}

// MakeRequest calls the configured endpoint, query values are added to the ones already in the url
func (c *Client) MakeRequest(ctx context.Context, query url.Values) (*http.Response, error) {
	var body []byte
	if c.config.Method == http.MethodPost && c.config.Body != "" {
		body = []byte(c.config.Body)
	}

	req, err := http.NewRequestWithContext(ctx, c.config.Method, c.config.URL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for k, values := range query {
			for _, v := range values {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	c.setAuth(req)

	return c.httpClient.Do(req)
}
