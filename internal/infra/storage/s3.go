package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type AvatarStore interface {
	// PutAvatar stores an already normalized WebP and returns its public URL.
	PutAvatar(ctx context.Context, userID uint, webpData []byte) (string, error)
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type S3AvatarStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewS3AvatarStore(cfg S3Config) *S3AvatarStore {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3AvatarStore{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		baseURL: base,
		now:     time.Now,
	}
}

func AvatarKey(userID uint, at time.Time) string {
	return fmt.Sprintf("avatars/%d/%d.webp", userID, at.Unix())
}

func (s *S3AvatarStore) PutAvatar(ctx context.Context, userID uint, webpData []byte) (string, error) {
	key := AvatarKey(userID, s.now())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(webpData),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("put avatar: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
