package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/charmbracelet/log"

	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/infrastructure/awsclient"
	"speech-upload-app/internal/logging"
)

// API is the slice of the S3 client the uploader needs.
type API interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Uploader stores audio as S3 objects.
type Uploader struct {
	api    API
	logger *log.Logger
}

func NewUploader(api API, logger *log.Logger) *Uploader {
	return &Uploader{api: api, logger: logging.Component(logger, "s3")}
}

// NewFromConfig builds an S3 client from cfg.
func NewFromConfig(cfg aws.Config, usePathStyle bool, logger *log.Logger) *Uploader {
	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.UsePathStyle = usePathStyle
	})
	return NewUploader(client, logger)
}

// Save puts obj at s3://bucket/key. Empty data is skipped with a warning.
func (u *Uploader) Save(ctx context.Context, obj audio.Object, target audio.Target) (audio.Location, error) {
	if len(obj.Data) == 0 {
		u.logger.Warn("no audio data, skipping upload", "bucket", target.Bucket, "key", target.Key)
		return "", nil
	}
	contentType := obj.ContentType
	if contentType == "" {
		contentType = audio.ContentTypeMPEG
	}

	out, err := u.api.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(target.Bucket),
		Key:           aws.String(target.Key),
		Body:          bytes.NewReader(obj.Data),
		ContentLength: aws.Int64(int64(len(obj.Data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		ferr := awsclient.Classify("s3 put "+target.Key, err)
		if ferr.Kind != fault.Unexpected {
			ferr.Kind = fault.Storage
		}
		status, requestID := awsclient.ResponseDetails(err)
		u.logger.Error("upload failed", "kind", ferr.Kind, "bucket", target.Bucket, "key", target.Key,
			"status", status, "request_id", requestID, "err", err)
		return "", ferr
	}

	loc := audio.Location(fmt.Sprintf("s3://%s/%s", target.Bucket, target.Key))
	u.logger.Info("audio stream uploaded", "location", loc, "bytes", len(obj.Data), "etag", aws.ToString(out.ETag))
	return loc, nil
}
