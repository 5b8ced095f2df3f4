package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// S3BlobStore stores poster objects in an S3-compatible bucket. It holds
// configuration only; a fresh client is built from it on every call, so no
// handle outlives the request it serves.
type S3BlobStore struct {
	cfg Config
}

func NewS3BlobStore(cfg Config) *S3BlobStore {
	return &S3BlobStore{
		cfg: cfg,
	}
}

func (s *S3BlobStore) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return client, nil
}

func (s *S3BlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader, overwrite bool) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	// If-None-Match makes the write fail on an existing object instead of
	// silently replacing it.
	if !overwrite {
		input.IfNoneMatch = aws.String("*")
	}

	_, err = client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("uploading object %q: %w", key, err)
	}

	return nil
}

func (s *S3BlobStore) Remove(ctx context.Context, keys []string) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	for _, key := range keys {
		_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		})

		if err != nil {
			return fmt.Errorf("removing object %q: %w", key, err)
		}
	}

	return nil
}

func (s *S3BlobStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	req, err := s3.NewPresignClient(client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))

	if err != nil {
		return "", err
	}

	return req.URL, nil
}
