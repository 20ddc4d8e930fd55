package media

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// putObjectAPI is the subset of the S3 client used for uploads.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Uploader stores images in an S3 bucket.
type s3Uploader struct {
	client putObjectAPI
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Uploader creates an S3-backed uploader using the default AWS credential chain.
func NewS3Uploader(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Uploader, error) {
	logger = logger.With().Str("component", "s3-uploader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 uploader initialised")

	return newS3Uploader(s3.NewFromConfig(cfg), bucket, region, prefix, logger), nil
}

func newS3Uploader(client putObjectAPI, bucket, region, prefix string, logger zerolog.Logger) *s3Uploader {
	return &s3Uploader{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
		logger: logger,
	}
}

func (u *s3Uploader) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	key, err := ObjectKey(u.prefix, filename)
	if err != nil {
		return "", err
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(ContentType(filename)),
	})
	if err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to upload to S3 (bucket=%s, key=%s): %w", u.bucket, key, err)
	}

	u.logger.Info().
		Str("bucket", u.bucket).
		Str("key", key).
		Msg("image uploaded to S3")

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
