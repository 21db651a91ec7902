package s3

import (
	"context"
	"fmt"
	"mime"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"stayos/internal/config"
	"stayos/internal/port"
)

// Resident documents are small (IDs, contracts), so a single part is almost
// always enough.
const uploadPartSize = 8 * 1024 * 1024

type documentStore struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewDocumentStore builds the S3-backed ObjectStorage. A custom endpoint
// switches to path-style addressing so MinIO and LocalStack work.
func NewDocumentStore(ctx context.Context, cfg *config.S3Config) (port.ObjectStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documentStore: aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &documentStore{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = uploadPartSize
		}),
	}, nil
}

func (d *documentStore) Put(ctx context.Context, in port.PutObjectInput) (*port.PutObjectOutput, error) {
	out, err := d.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(in.Bucket),
		Key:                  aws.String(in.Key),
		Body:                 in.Body,
		ContentType:          aws.String(in.ContentType),
		Metadata:             in.Metadata,
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return nil, fmt.Errorf("documentStore.Put %s: %w", in.Key, err)
	}
	return &port.PutObjectOutput{Location: out.Location, ETag: aws.ToString(out.ETag)}, nil
}

func (d *documentStore) Delete(ctx context.Context, bucket, key string) error {
	if _, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("documentStore.Delete %s: %w", key, err)
	}
	return nil
}

func (d *documentStore) PresignGet(ctx context.Context, in port.PresignInput) (string, error) {
	get := &s3.GetObjectInput{
		Bucket: aws.String(in.Bucket),
		Key:    aws.String(in.Key),
	}
	if disposition := attachment(in.DownloadName); disposition != "" {
		get.ResponseContentDisposition = aws.String(disposition)
	}

	req, err := d.presigner.PresignGetObject(ctx, get, s3.WithPresignExpires(in.Expiry))
	if err != nil {
		return "", fmt.Errorf("documentStore.PresignGet %s: %w", in.Key, err)
	}
	return req.URL, nil
}

// attachment renders a Content-Disposition value, RFC 2231 encoding the name
// when it is not plain ASCII.
func attachment(name string) string {
	if name == "" {
		return ""
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}
