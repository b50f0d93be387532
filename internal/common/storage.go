package common

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base the stored objects are served from. Defaults to the endpoint.
	PublicURL string
}

// ObjectStore keeps uploaded assets in an S3 compatible bucket.
type ObjectStore struct {
	cfg    StorageConfig
	client *minio.Client
}

func NewObjectStore(cfg StorageConfig) (*ObjectStore, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")

	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	if cfg.PublicURL == "" {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		cfg.PublicURL = scheme + endpoint
	}
	cfg.PublicURL = strings.TrimSuffix(cfg.PublicURL, "/")

	return &ObjectStore{cfg: cfg, client: cl}, nil
}

const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": {"AWS": ["*"]},
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

// EnsureBucket creates the bucket if needed and makes its objects publicly readable.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return s.client.SetBucketPolicy(ctx, s.cfg.Bucket, fmt.Sprintf(publicReadPolicy, s.cfg.Bucket))
}

// Upload stores the object under folder with a random name and returns its public URL.
// The name keeps the extension of filename so the URL's last segment is "<id><ext>".
func (s *ObjectStore) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error) {
	id := uuid.NewString()
	if i := strings.LastIndex(filename, "."); i >= 0 {
		id += strings.ToLower(filename[i:])
	}

	key := folder + "/" + id
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("could not upload object: %w", err)
	}

	return s.ObjectURL(key), nil
}

// Destroy removes every object in folder whose name is publicID, with or without an extension.
func (s *ObjectStore) Destroy(ctx context.Context, folder, publicID string) error {
	prefix := folder + "/" + publicID
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return obj.Err
		}

		name := strings.TrimPrefix(obj.Key, prefix)
		if name != "" && !strings.HasPrefix(name, ".") {
			continue
		}

		err := s.client.RemoveObject(ctx, s.cfg.Bucket, obj.Key, minio.RemoveObjectOptions{})
		if err != nil {
			return fmt.Errorf("could not remove object: %w", err)
		}
	}

	return nil
}

func (s *ObjectStore) ObjectURL(key string) string {
	return s.cfg.PublicURL + "/" + s.cfg.Bucket + "/" + key
}
