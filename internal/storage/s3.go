// Package storage abstracts where uploaded photo binaries live.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "darkroom/internal/config"
)

// Store puts and removes photo objects. Upload returns the public URL that
// gets persisted on the photo row verbatim.
type Store interface {
	Upload(ctx context.Context, body io.Reader, filename, contentType string) (string, error)
	Delete(ctx context.Context, objectURL string) error
}

// S3Store stores photos in an S3 (or S3-compatible) bucket.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Store builds a store from application config. A custom endpoint (for
// MinIO or localstack) switches the client to path-style addressing.
func NewS3Store(ctx context.Context, cfg *appconfig.Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	if cfg.S3Endpoint != "" {
		baseURL = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}

	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		baseURL:  baseURL,
	}, nil
}

// Upload streams the body to the bucket under a fresh key and returns the URL.
func (s *S3Store) Upload(ctx context.Context, body io.Reader, filename, contentType string) (string, error) {
	key := "photos/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object a previously returned URL points at. URLs not
// minted by this store are ignored.
func (s *S3Store) Delete(ctx context.Context, objectURL string) error {
	key, ok := s.keyFromURL(objectURL)
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) keyFromURL(objectURL string) (string, bool) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", false
	}
	p := strings.TrimPrefix(u.Path, "/")
	// Path-style URLs carry the bucket as the first segment.
	p = strings.TrimPrefix(p, s.bucket+"/")
	if !strings.HasPrefix(p, "photos/") {
		return "", false
	}
	return p, true
}
