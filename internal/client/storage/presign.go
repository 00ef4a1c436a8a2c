// Package storage issues presigned URLs for the backend's S3-compatible
// object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const defaultExpiry = 15 * time.Minute

// ErrNotConfigured is returned when no bucket or endpoint is set.
var ErrNotConfigured = errors.New("object storage not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base under which objects are readable without
	// signing. When empty, Endpoint/Bucket is used.
	PublicURL string
	// Expires is the lifetime of presigned URLs.
	Expires time.Duration
}

type Presigner struct {
	cfg Config

	mu sync.Mutex
	pc *s3.PresignClient
}

func NewPresigner(cfg Config) *Presigner {
	if cfg.Expires <= 0 {
		cfg.Expires = defaultExpiry
	}
	return &Presigner{cfg: cfg}
}

// AvatarKey builds a unique object key for a user's avatar.
func AvatarKey(userID, ext string, now time.Time) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("avatars/%s/%d/%02d/%v%s", userID, now.Year(), now.Month(), uuid.New(), strings.ToLower(ext))
}

func (p *Presigner) client(ctx context.Context) (*s3.PresignClient, error) {
	if p.cfg.Bucket == "" || p.cfg.Endpoint == "" {
		return nil, ErrNotConfigured
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pc != nil {
		return p.pc, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.cfg.AccessKey,
			p.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.cfg.Endpoint)
		o.UsePathStyle = true
	})

	p.pc = newS3PresignClient(client)
	return p.pc, nil
}

// PresignPut returns a URL that accepts one PUT of key with contentType.
func (p *Presigner) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	pc, err := p.client(ctx)
	if err != nil {
		return "", err
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(p.cfg.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := presignPutObject(pc, ctx, in, s3.WithPresignExpires(p.cfg.Expires))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return req.URL, nil
}

// PublicURL is the stable address of key in a public bucket.
func (p *Presigner) PublicURL(key string) string {
	base := strings.TrimRight(p.cfg.PublicURL, "/")
	if base == "" {
		base = strings.TrimRight(p.cfg.Endpoint, "/") + "/" + p.cfg.Bucket
	}
	return base + "/" + key
}
