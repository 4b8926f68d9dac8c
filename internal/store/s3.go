package store

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	Client S3API
	Bucket string
	Prefix string
}

// Key lays out objects as <prefix>/<dataset>/<season>/<file> so each dataset
// and season gets its own Athena location.
func (u *S3Uploader) Key(dataset, season, file string) string {
	return path.Join(strings.Trim(u.Prefix, "/"), dataset, season, file)
}

// Location is the s3:// URI of the directory Key writes into.
func (u *S3Uploader) Location(dataset, season string) string {
	return fmt.Sprintf("s3://%s/%s/", u.Bucket, path.Join(strings.Trim(u.Prefix, "/"), dataset, season))
}

func (u *S3Uploader) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", u.Bucket, key, err)
	}
	return nil
}
