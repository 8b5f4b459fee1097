package application

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"

	"github.com/streamvault/streamvault/pkg/helpers"
)

// GCSUploader satisfies Uploader on top of a Cloud Storage bucket.
type GCSUploader struct {
	Client *storage.Client
	Bucket string
}

func NewGCSUploader(client *storage.Client, bucket string) *GCSUploader {
	return &GCSUploader{Client: client, Bucket: bucket}
}

func (u *GCSUploader) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if u.Client == nil || u.Bucket == "" {
		return "", errors.New("gcs not configured")
	}
	return helpers.UploadObject(ctx, u.Client, u.Bucket, objectPath, contentType, r)
}
