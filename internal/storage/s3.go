// 包 storage：从 S3 兼容存储读取邮编表对象
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"zip-api/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Service：MinIO 客户端包装
type S3Service struct {
	client *minio.Client
}

// NewS3ServiceFromEnv：读取 MINIO_ENDPOINT / MINIO_ACCESS_KEY / MINIO_SECRET_KEY / MINIO_USE_SSL
func NewS3ServiceFromEnv() (*S3Service, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}
	c, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	logger.L().Debug("minio_client_ok", "endpoint", endpoint)
	return &S3Service{client: c}, nil
}

// ReadObject：读取整个对象内容；对象不存在时返回错误
func (s *S3Service) ReadObject(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}
	defer obj.Close()
	b, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s/%s: %w", bucket, key, err)
	}
	logger.L().Debug("minio_object_read", "bucket", bucket, "key", key, "bytes", len(b))
	return b, nil
}
