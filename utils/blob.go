package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobClient uploads public assets (project screenshots, event images) to an
// S3-compatible bucket (R2) and hands back CDN URLs.
type BlobClient struct {
	client  *s3.Client
	bucket  string
	cdnBase string
}

type BlobConfig struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	CDNBaseURL      string
}

func NewBlobClient(cfg BlobConfig) (*BlobClient, error) {
	cdnBase := cfg.CDNBaseURL
	if cdnBase == "" {
		cdnBase = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.AccessKeySecret, "",
		)),
		awsconfig.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load blob store config: %w", err)
	}

	return &BlobClient{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		cdnBase: cdnBase,
	}, nil
}

// Upload stores a multipart file under key and returns its public URL.
func (b *BlobClient) Upload(fileHeader *multipart.FileHeader, key string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = b.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", b.cdnBase, key), nil
}
