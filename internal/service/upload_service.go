package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/config"
)

// ErrStorageNotConfigured 对象存储未配置时上传功能不可用
var ErrStorageNotConfigured = errors.New("object storage is not configured")

// UploadService 3D模型/图纸文件上传，落MinIO后返回可写进 model3d_url 的地址。
type UploadService struct {
	client *minio.Client
	cfg    config.MinIOConfig
}

// NewUploadService 创建上传服务
func NewUploadService(client *minio.Client, cfg config.MinIOConfig) *UploadService {
	return &UploadService{client: client, cfg: cfg}
}

// modelObjectKey 生成对象存储键：完整UUID + 原扩展名
func modelObjectKey(fileName string) string {
	return fmt.Sprintf("models/%s%s", uuid.New().String(), filepath.Ext(fileName))
}

// UploadModelFile 上传模型文件并返回访问URL
func (s *UploadService) UploadModelFile(ctx context.Context, reader io.Reader, size int64, fileName, contentType string) (string, error) {
	if s.client == nil {
		return "", ErrStorageNotConfigured
	}

	objectName := modelObjectKey(fileName)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, objectName), nil
}
