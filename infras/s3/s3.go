// Package s3 writes archive objects to any S3 compatible bucket.
package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"seatq/config"
	"seatq/infras/otel"
	"seatq/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

type Object struct {
	// Bucket falls back to EXTERNAL_S3_BUCKET_NAME when empty.
	Bucket      string
	Key         string
	ContentType string
	Body        []byte
}

type S3 interface {
	// Put uploads obj and returns the URL it can be read from.
	Put(ctx context.Context, obj Object) (url string, err error)
}

type client struct {
	api      *s3.Client
	bucket   string
	public   string
	endpoint string
	otel     otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) S3 {
	opts := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")),
	)
	if err != nil {
		log.Warn().Err(err).Msg("aws configuration incomplete, archive uploads may fail")
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(opts.APIEndpoint)
		}

		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &client{
		api:      api,
		bucket:   opts.BucketName,
		public:   opts.PublicDomain,
		endpoint: opts.APIEndpoint,
		otel:     otl,
	}
}

func (c *client) Put(ctx context.Context, obj Object) (url string, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Put")
	defer scope.End()
	defer scope.TraceIfError(err)

	if obj.Bucket == constant.Empty {
		obj.Bucket = c.bucket
	}

	scope.SetAttributes(map[string]any{
		"s3.bucket": obj.Bucket,
		"s3.key":    obj.Key,
		"s3.size":   len(obj.Body),
	})

	_, err = c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(obj.Bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(obj.Body),
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(int64(len(obj.Body))),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", obj.Bucket).Str("key", obj.Key).Msg("failed to put object")

		return constant.Empty, fmt.Errorf("failed to put object %s: %w", obj.Key, err)
	}

	return objectURL(c.public, c.endpoint, obj.Bucket, obj.Key), nil
}

// objectURL prefers the public domain, which already maps to the bucket.
func objectURL(publicDomain, endpoint, bucket, key string) string {
	if publicDomain != constant.Empty {
		return strings.TrimSuffix(publicDomain, "/") + "/" + key
	}

	return strings.TrimSuffix(endpoint, "/") + "/" + bucket + "/" + key
}
