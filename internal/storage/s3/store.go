package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mvps-print/printshop-backend/config"
)

const signedURLExpiry = 15 * time.Minute

// Store wraps the S3 client for order-file uploads, product-image uploads
// and signed download URLs.
type Store struct {
	client  *awss3.Client
	presign *awss3.PresignClient
	bucket  string
}

func NewStore(ctx context.Context, cfg *config.S3Config) (*Store, error) {
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg)
	return &Store{
		client:  client,
		presign: awss3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// CleanFileName strips any path component and replaces characters that are
// unsafe in S3 keys. The cleaned name is what the order manifest records.
func CleanFileName(name string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(name), "_")
}

func (s *Store) put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
	})
	return err
}

// UploadOrderFile stores a print file under the order's namespace and returns
// the cleaned name.
func (s *Store) UploadOrderFile(ctx context.Context, data []byte, filename, orderNumber string) (string, error) {
	clean := CleanFileName(filename)
	key := fmt.Sprintf("orders/%s/%s", orderNumber, clean)
	if err := s.put(ctx, key, data); err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return clean, nil
}

// UploadProductImage stores a catalog image under a collision-free key and
// returns the public URL recorded on the product row.
func (s *Store) UploadProductImage(ctx context.Context, data []byte, filename string) (string, error) {
	key := fmt.Sprintf("stationery/%s-%s", uuid.New().String(), CleanFileName(filename))
	if err := s.put(ctx, key, data); err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

// SignedURL returns a time-limited download URL for a stored object key.
func (s *Store) SignedURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *awss3.PresignOptions) {
		o.Expires = signedURLExpiry
	})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
