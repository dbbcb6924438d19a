package storage

import (
	"college-site/internal/config"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Bucket stores objects in an S3-compatible service.
type S3Bucket struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
}

// NewS3Bucket connects to the endpoint at cfg.URL using cfg.APIKey and cfg.Secret.
func NewS3Bucket(cfg config.StorageConfig) (*S3Bucket, error) {
	sess, err := session.NewSession(&aws.Config{
		Endpoint:         aws.String(cfg.URL),
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.APIKey, cfg.Secret, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = joinURL(cfg.URL, cfg.Bucket)
	}

	return &S3Bucket{
		client:    s3.New(sess),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

// Upload puts body at key and returns its public URL.
func (b *S3Bucket) Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := b.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return b.PublicURL(key), nil
}

// PublicURL returns the address the object is served from.
func (b *S3Bucket) PublicURL(key string) string {
	return joinURL(b.publicURL, key)
}
