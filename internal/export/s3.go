package export

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// S3 is for uploading written watchlist files to an s3 bucket.
type S3 struct {
	Client *awss3.Client
	Cfg    *config.S3
}

var s3 S3

// InitS3 initializes s3 client with configured values. Credentials come
// from the config file, the ambient AWS credential chain is not consulted.
func InitS3(cfg *config.S3) *S3 {
	if s3.Client == nil {
		client := awss3.New(awss3.Options{
			Region: cfg.AWSRegion,
			Credentials: aws.CredentialsProviderFunc(func(_ context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     cfg.AccessKeyID,
					SecretAccessKey: cfg.SecretAccessKey,
				}, nil
			}),
			HTTPClient: &http.Client{
				Timeout: time.Duration(cfg.ReqTimeoutSec) * time.Second,
			},
		})
		s3 = S3{
			Client: client,
			Cfg:    cfg,
		}
	}
	return &s3
}

// GetS3 returns already prepared s3 instance.
func GetS3() *S3 {
	return &s3
}

// UploadFiles puts each written watchlist file to the configured bucket.
func (s *S3) UploadFiles(ctx context.Context, files []WrittenFile) error {
	for _, file := range files {
		data, err := os.ReadFile(file.Path)
		if err != nil {
			return errors.Wrapf(err, "s3 upload read %s", file.Path)
		}
		key := objectKey(s.Cfg, file.Path)
		_, err = s.Client.PutObject(ctx, &awss3.PutObjectInput{
			Bucket: aws.String(s.Cfg.Bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		if err != nil {
			return errors.Wrapf(err, "s3 upload %s", key)
		}
		log.Info().Str("bucket", s.Cfg.Bucket).Str("key", key).Msg("watchlist file uploaded")
	}
	return nil
}

// objectKey returns the bucket object name for a written file. The export
// directory is kept as a key prefix when configured.
func objectKey(cfg *config.S3, path string) string {
	if cfg.UsePrefixForObjName {
		return filepath.ToSlash(path)
	}
	return filepath.Base(path)
}
