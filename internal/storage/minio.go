package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore uploads to a MinIO server, creating the bucket on first use.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioStore(ctx context.Context, opts Options) (*MinioStore, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("minio storage needs an endpoint")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", opts.Bucket, err)
		}
		storageLogger.Info().Str("bucket", opts.Bucket).Msg("Created bucket")
	}

	return &MinioStore{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: opts.PublicBaseURL,
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	if err := CheckType(contentType); err != nil {
		return "", err
	}

	object := ObjectName(name)
	if _, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("uploading to minio: %w", err)
	}

	storageLogger.Info().Str("object", object).Str("bucket", s.bucket).Str("driver", "minio").Msg("Image uploaded")
	return publicURL(s.baseURL, object), nil
}
