package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Storage implements Storage over S3-compatible object storage.
// Uploads are public-read so the resulting URLs can be dropped straight
// into email HTML.
type S3Storage struct {
	client *s3.Client
	cfg    Config
}

// New creates an S3Storage with the given configuration.
func New(cfg Config) (*S3Storage, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Storage{client: s3.New(s3.Options{}, opts...), cfg: cfg}, nil
}

func (s *S3Storage) Put(ctx context.Context, r io.Reader, size int64) (*FileInfo, error) {
	if size <= 0 {
		return nil, ErrEmptyFile
	}
	if size > s.cfg.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	mime, body, err := detectImageType(r)
	if err != nil {
		return nil, err
	}
	ext, ok := imageExtensions[mime]
	if !ok {
		return nil, ErrInvalidMIME
	}

	key := s.buildKey(ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(mime),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &FileInfo{
		Key:         key,
		URL:         s.publicURL(key),
		ContentType: mime,
		Size:        size,
	}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}
	return nil
}

func (s *S3Storage) buildKey(ext string) string {
	name := uuid.NewString() + ext
	prefix := strings.Trim(s.cfg.KeyPrefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func (s *S3Storage) publicURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		endpoint := strings.TrimSuffix(s.cfg.Endpoint, "/")
		if s.cfg.PathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, s.cfg.Bucket, key)
		}
		return fmt.Sprintf("%s/%s", endpoint, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

var _ Storage = (*S3Storage)(nil)
