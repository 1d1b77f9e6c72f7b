package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"teamforge/internal/pkg/config"
)

// putObjectAPI s3.Client 中用到的部分, 便于替换
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader S3兼容对象存储
type S3Uploader struct {
	client  putObjectAPI
	bucket  string
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewS3Uploader 创建S3上传器, 未配置AK/SK时使用默认凭证链
func NewS3Uploader(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage.bucket 未配置")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载S3配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: PublicBaseURL(cfg),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Upload 上传对象
func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	// 单次上传超时, 由 storage.timeout 配置
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		u.logger.Error("上传对象失败", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("上传对象失败: %w", err)
	}

	u.logger.Info("上传对象成功", zap.String("key", key), zap.Int64("size", size))
	return u.baseURL + "/" + key, nil
}

// PublicBaseURL 对象公开访问前缀
func PublicBaseURL(cfg *config.StorageConfig) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "" && cfg.UsePathStyle:
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	case cfg.Endpoint != "":
		endpoint := strings.TrimRight(cfg.Endpoint, "/")
		scheme := "https://"
		if i := strings.Index(endpoint, "://"); i >= 0 {
			scheme, endpoint = endpoint[:i+3], endpoint[i+3:]
		}
		return scheme + cfg.Bucket + "." + endpoint
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}
