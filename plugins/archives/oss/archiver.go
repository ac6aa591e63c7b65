package oss

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type Config struct {
	Endpoint        string `mapstructure:"endpoint" validate:"required"`
	Bucket          string `mapstructure:"bucket" validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id" validate:"required"`
	AccessKeySecret string `mapstructure:"access_key_secret" validate:"required"`
	SecurityToken   string `mapstructure:"security_token"`
	// UseCname treats Endpoint as a domain already bound to the bucket
	UseCname bool `mapstructure:"use_cname"`
}

type Archiver struct {
	bucket *oss.Bucket
	prefix string
}

func NewArchiver(config Config, prefix string) (*Archiver, error) {
	if config.Endpoint == "" || config.Bucket == "" {
		return nil, errors.New("endpoint and bucket are required")
	}

	options := []oss.ClientOption{oss.UseCname(config.UseCname)}
	if config.SecurityToken != "" {
		options = append(options, oss.SecurityToken(config.SecurityToken))
	}
	client, err := oss.New(config.Endpoint, config.AccessKeyID, config.AccessKeySecret, options...)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(config.Bucket)
	if err != nil {
		return nil, err
	}

	return &Archiver{bucket: bucket, prefix: prefix}, nil
}

func (a *Archiver) Put(ctx context.Context, key string, data []byte) error {
	objectKey := path.Join(a.prefix, key)
	err := a.bucket.PutObject(objectKey, bytes.NewReader(data),
		oss.ContentType("application/json"),
		oss.WithContext(ctx),
	)
	if err != nil {
		var ossErr oss.ServiceError
		if errors.As(err, &ossErr) {
			return fmt.Errorf("putting oss://%s/%s: %s: %w", a.bucket.BucketName, objectKey, ossErr.Code, err)
		}
		return fmt.Errorf("putting oss://%s/%s: %w", a.bucket.BucketName, objectKey, err)
	}
	return nil
}
