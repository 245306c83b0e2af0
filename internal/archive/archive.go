package archive

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	appconfig "school-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader copies generated financial documents to an S3-compatible bucket
// (Cloudflare R2 or any S3 endpoint) so bills and receipts survive outside
// the serving process. A nil Uploader is valid and uploads become no-ops -
// document generation never depends on the archive being reachable.
type Uploader struct {
	client *s3.Client
	bucket string
}

// New builds an Uploader from the archive config. Returns nil (not an error)
// when the archive is unconfigured, so callers can keep a single code path.
func New(cfg *appconfig.Config) *Uploader {
	if cfg.Archive.Endpoint == "" || cfg.Archive.Bucket == "" {
		log.Println("[Archive] Not configured, document archiving disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		log.Printf("[Archive] Failed to configure client: %v", err)
		return nil
	}

	endpoint := cfg.Archive.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	log.Printf("[Archive] Document archive enabled, bucket=%s", cfg.Archive.Bucket)
	return &Uploader{client: client, bucket: cfg.Archive.Bucket}
}

// Store uploads one generated document under documents/<kind>/<filename>.
// Failures are logged and returned but never fatal to the caller.
func (u *Uploader) Store(ctx context.Context, kind, filename string, data []byte) error {
	if u == nil {
		return nil
	}

	key := fmt.Sprintf("documents/%s/%s", kind, filename)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		log.Printf("[Archive] Upload failed for %s: %v", key, err)
		return err
	}

	log.Printf("[Archive] Stored %s (%d bytes)", key, len(data))
	return nil
}
