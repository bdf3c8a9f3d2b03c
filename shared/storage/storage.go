package storage

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"
)

// Uploader stores a binary payload under a path and returns a durable URL.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// GCSUploader implements Uploader on a single Google Cloud Storage bucket.
type GCSUploader struct {
	bucket string
	svc    *storage.Service
}

// NewGCSUploader creates an uploader for the given bucket using application
// default credentials.
func NewGCSUploader(ctx context.Context, bucket string) (*GCSUploader, error) {
	svc, err := storage.NewService(ctx, option.WithScopes(storage.DevstorageReadWriteScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}

	return &GCSUploader{
		bucket: bucket,
		svc:    svc,
	}, nil
}

// Upload writes the object and returns its public URL. Repeated uploads to
// the same path overwrite the previous object.
func (u *GCSUploader) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	object := &storage.Object{
		Name:        path,
		ContentType: contentType,
	}

	_, err := u.svc.Objects.
		Insert(u.bucket, object).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload object %q: %w", path, err)
	}

	return ObjectURL(u.bucket, path), nil
}

// ObjectURL returns the public URL of an object in a bucket.
func ObjectURL(bucket, path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, path)
}
