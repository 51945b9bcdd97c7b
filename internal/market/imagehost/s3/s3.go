// Package s3 stores pictures in an S3 compatible bucket (AWS, MinIO, R2).
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/pkg/idx"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Endpoint  string // empty for AWS
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// PublicURL is the base objects are served from, e.g. a CDN. Defaults to
	// <Endpoint>/<Bucket>.
	PublicURL string
}

// Host uploads objects with PutObject. The object key doubles as the public
// id.
type Host struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func New(ctx context.Context, cfg Config) (*Host, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: S3_BUCKET is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		if cfg.Endpoint != "" {
			publicURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &Host{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (h *Host) Upload(ctx context.Context, f imagehost.File, folder string) (domain.Image, error) {
	format := imagehost.Format(f.Name)
	name := idx.New().String()
	if format != "" {
		name += "." + format
	}
	key := imagehost.Key(folder, name)

	in := &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        f.Body,
		ContentType: aws.String(f.ContentType),
	}
	if f.Size > 0 {
		in.ContentLength = aws.Int64(f.Size)
	}

	if _, err := h.client.PutObject(ctx, in); err != nil {
		return domain.Image{}, fmt.Errorf("s3 put %s: %w", key, err)
	}

	url := h.publicURL + "/" + key
	return domain.Image{
		PublicID:  key,
		URL:       url,
		SecureURL: url,
		Format:    format,
		Bytes:     f.Size,
	}, nil
}

// Destroy deletes the object. S3 does not report missing keys on delete.
func (h *Host) Destroy(ctx context.Context, publicID string) error {
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", publicID, err)
	}
	return nil
}
