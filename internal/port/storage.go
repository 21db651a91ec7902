package port

import (
	"context"
	"io"
	"time"
)

// PutObjectInput describes one object write to document storage.
type PutObjectInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
	// Metadata is stored as x-amz-meta-* headers alongside the object.
	Metadata map[string]string
}

// PutObjectOutput contains the result of a successful write.
type PutObjectOutput struct {
	Location string
	ETag     string
}

// PresignInput describes a time-limited download link.
type PresignInput struct {
	Bucket string
	Key    string
	// DownloadName, when set, is served back as the attachment file name.
	DownloadName string
	Expiry       time.Duration
}

// ObjectStorage abstracts the blob store holding resident documents.
type ObjectStorage interface {
	Put(ctx context.Context, input PutObjectInput) (*PutObjectOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	PresignGet(ctx context.Context, input PresignInput) (string, error)
}
