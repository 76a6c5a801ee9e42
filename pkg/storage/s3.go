package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client used by S3Backend.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Backend stores each key as one object of a bucket.
type S3Backend struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Backend creates a backend writing objects named prefix+key.
func NewS3Backend(client S3API, bucket, prefix string) *S3Backend {
	return &S3Backend{client: client, bucket: bucket, prefix: prefix}
}

// S3ClientOptions configures NewS3Client.
type S3ClientOptions struct {
	// Region is the bucket region, e.g. "us-east-1".
	Region string

	// Endpoint overrides the service endpoint, e.g. a MinIO URL.
	Endpoint string

	// UsePathStyle addresses buckets as endpoint/bucket.
	UsePathStyle bool

	// AccessKeyID and SecretAccessKey are static credentials. With both
	// empty, requests are sent unsigned.
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client builds an S3 client from static options.
func NewS3Client(o S3ClientOptions) *s3.Client {
	opts := s3.Options{
		Region:       o.Region,
		UsePathStyle: o.UsePathStyle,
		Credentials:  aws.AnonymousCredentials{},
	}
	if o.Endpoint != "" {
		opts.BaseEndpoint = aws.String(o.Endpoint)
	}
	if o.AccessKeyID != "" || o.SecretAccessKey != "" {
		creds := aws.Credentials{
			AccessKeyID:     o.AccessKeyID,
			SecretAccessKey: o.SecretAccessKey,
			Source:          "micro",
		}
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) { return creds, nil },
		))
	}
	return s3.New(opts)
}

func (b *S3Backend) objectKey(key string) *string {
	return aws.String(b.prefix + key)
}

// GetItem implements Backend.
func (b *S3Backend) GetItem(ctx context.Context, key string) (string, bool, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    b.objectKey(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return "", false, nil
		}
		return "", false, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// SetItem implements Backend.
func (b *S3Backend) SetItem(ctx context.Context, key, value string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         b.objectKey(key),
		Body:        strings.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	return err
}

// RemoveItem implements Backend.
func (b *S3Backend) RemoveItem(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    b.objectKey(key),
	})
	return err
}

// Close implements Backend.
func (b *S3Backend) Close() error { return nil }
