package gcs

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path"

	"cloud.google.com/go/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

type Config struct {
	Bucket string `mapstructure:"bucket" validate:"required"`
	// CredentialsJSONBase64 falls back to application default credentials when empty
	CredentialsJSONBase64 string `mapstructure:"credentials_json_base64"`
}

type Archiver struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewArchiver(ctx context.Context, config Config, prefix string) (*Archiver, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	var creds *google.Credentials
	var err error
	if config.CredentialsJSONBase64 != "" {
		credentialsJSON, err := base64.StdEncoding.DecodeString(config.CredentialsJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("decoding credentials_json_base64: %w", err)
		}
		creds, err = google.CredentialsFromJSON(ctx, credentialsJSON, storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("failed to obtain credentials: %w", err)
		}
	} else {
		creds, err = google.FindDefaultCredentials(ctx, storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
	}

	httpClient := oauth2.NewClient(ctx, creds.TokenSource)
	httpClient.Transport = otelhttp.NewTransport(httpClient.Transport, otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
		return fmt.Sprintf("GCSArchiver %s", operation)
	}))

	client, err := storage.NewClient(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return NewArchiverWithClient(client, config.Bucket, prefix), nil
}

func NewArchiverWithClient(client *storage.Client, bucket, prefix string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix}
}

func (a *Archiver) Put(ctx context.Context, key string, data []byte) error {
	w := a.client.Bucket(a.bucket).Object(path.Join(a.prefix, key)).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("writing gs://%s/%s: %w", a.bucket, w.ObjectAttrs.Name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing gs://%s/%s: %w", a.bucket, w.ObjectAttrs.Name, err)
	}
	return nil
}

func (a *Archiver) Close() error {
	return a.client.Close()
}
