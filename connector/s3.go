package connector

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cabify/techdocs/core"
)

// S3Options configures the S3 blob source. Empty fields fall back to
// the SDK's default resolution chain (environment, shared config, IAM).
type S3Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Source implements core.BlobSource on top of an S3 bucket.
type S3Source struct {
	client *s3.Client
	bucket string
}

// NewS3Source creates an S3Source for the given bucket.
func NewS3Source(ctx context.Context, bucket string, opts S3Options) (*S3Source, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3Source{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// List enumerates all objects under the prefix, following pagination.
func (s *S3Source) List(ctx context.Context, prefix string) ([]core.ObjectInfo, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	var objects []core.ObjectInfo
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing objects in %s: %w", s.bucket, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			info := core.ObjectInfo{Key: *obj.Key}
			if obj.LastModified != nil {
				info.LastModified = obj.LastModified.UTC()
			}
			objects = append(objects, info)
		}
	}
	return objects, nil
}

// Download fetches a single object's contents.
func (s *S3Source) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}
