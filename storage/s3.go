package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"storeit/config"
)

// S3Store keeps blobs in an S3-compatible bucket. Objects are keyed by
// the same id the file document references, so lookups never need a
// listing.
type S3Store struct {
	c         *s3.Client
	bucket    *string
	publicURL string
}

func NewS3(cfg config.S3) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(cfg.Bucket)

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.Region = cfg.Region
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", cfg.Bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Store{
		c:         client,
		bucket:    bucket,
		publicURL: cfg.PublicURL,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, id, name string, data []byte) (*Object, error) {
	size := int64(len(data))

	_, err := s.c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        s.bucket,
		Key:           aws.String(id),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to S3, %w", err)
	}

	return &Object{
		ID:   id,
		Name: name,
		Size: size,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, id string) error {
	_, err := s.c.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.bucket,
		Key:    aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3, %w", err)
	}

	return nil
}

func (s *S3Store) FileURL(id string) string {
	return s.publicURL + "/" + id
}
