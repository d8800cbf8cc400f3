// Package storage uploads campaign images to S3-compatible object
// storage and hands back public URLs for embedding in outbound email.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	ErrEmptyFile     = errors.New("storage: file is empty")
	ErrFileTooLarge  = errors.New("storage: file exceeds size limit")
	ErrInvalidMIME   = errors.New("storage: file type not allowed")
	ErrNotFound      = errors.New("storage: file not found")
	ErrAccessDenied  = errors.New("storage: access denied")
	ErrUploadFailed  = errors.New("storage: upload failed")
	ErrDeleteFailed  = errors.New("storage: delete failed")
)

// Storage stores campaign images.
type Storage interface {
	// Put uploads an image and returns its info, including the public
	// URL. The reader is sniffed for its MIME type; non-image payloads
	// are rejected.
	Put(ctx context.Context, r io.Reader, size int64) (*FileInfo, error)

	// Delete removes a stored image by key.
	Delete(ctx context.Context, key string) error
}

// Config holds S3-compatible storage settings, populated from the
// environment.
type Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	// Endpoint overrides the AWS endpoint, for MinIO and friends.
	Endpoint string `env:"S3_ENDPOINT"`
	Region   string `env:"S3_REGION" envDefault:"us-east-1"`
	// PublicURL is the CDN or bucket URL prefix used in returned URLs.
	PublicURL string `env:"S3_PUBLIC_URL"`
	PathStyle bool   `env:"S3_PATH_STYLE"`
	// KeyPrefix is the folder images land in.
	KeyPrefix string `env:"S3_KEY_PREFIX" envDefault:"campaign-images"`
	// MaxUploadSize bounds one image upload, in bytes.
	MaxUploadSize int64 `env:"S3_MAX_UPLOAD_SIZE" envDefault:"10485760"`
}

// Configured reports whether the upload endpoint can work.
func (c Config) Configured() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

func (c Config) validate() error {
	if !c.Configured() {
		return ErrInvalidConfig
	}
	return nil
}

// FileInfo describes an uploaded image.
type FileInfo struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// wrapS3Error folds AWS error codes into the package sentinels so
// callers match with errors.Is.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}
	return fmt.Errorf("%w: %v", fallback, err)
}
