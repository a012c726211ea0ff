package storage

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3KeyPrefix = "uploads/"

// S3PutAPI is the part of *s3.Client the store needs.
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes uploads to a bucket. References are built from publicURL,
// which is whatever fronts the bucket (a CDN or the bucket website URL).
type S3Store struct {
	client    S3PutAPI
	bucket    string
	publicURL string
}

func NewS3Store(client S3PutAPI, bucket, publicURL string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error) {
	key := s3KeyPrefix + name

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}

	return s.publicURL + "/" + key, nil
}
