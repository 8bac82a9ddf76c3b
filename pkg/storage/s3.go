// Package storage uploads media to S3-compatible object storage.
// Supports AWS S3 and Wasabi (custom endpoint + path-style addressing).
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider identifies the S3-compatible storage backend.
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// WasabiEndpoints maps regions to Wasabi service endpoints.
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
}

// Config holds connection settings for the media bucket.
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// PublicBaseURL is the URL prefix objects are served from (CDN or
	// bucket website endpoint). Defaults to the bucket's virtual-hosted URL.
	PublicBaseURL string
	// WasabiEndpoint overrides the region-derived Wasabi endpoint.
	WasabiEndpoint string
}

// NewS3Client creates an S3 client for the configured provider.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Provider == ProviderWasabi {
		endpoint := cfg.WasabiEndpoint
		if endpoint == "" {
			var ok bool
			endpoint, ok = WasabiEndpoints[cfg.Region]
			if !ok {
				return nil, fmt.Errorf("unknown Wasabi region: %s", cfg.Region)
			}
		}
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + endpoint)
			o.UsePathStyle = true // Wasabi requires path-style
		}), nil
	}

	return s3.NewFromConfig(awsCfg), nil
}

// Bucket implements domain.ObjectStorage over one S3 bucket.
type Bucket struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewBucket(client *s3.Client, cfg Config) *Bucket {
	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &Bucket{client: client, bucket: cfg.Bucket, publicBaseURL: base}
}

// Put uploads data under key and returns the public URL.
func (b *Bucket) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return b.publicBaseURL + "/" + key, nil
}

// HealthCheck verifies the bucket is reachable.
func (b *Bucket) HealthCheck(ctx context.Context) error {
	_, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(b.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", b.bucket, err)
	}
	return nil
}
