package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/config"
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/repository"
)

// Services 服务集合
type Services struct {
	Auth        *AuthService
	Customer    *CustomerService
	Catalog     *CatalogService
	Transformer *TransformerService
	Export      *ExportService
	Upload      *UploadService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	// 初始化MinIO客户端，未配置或初始化失败时上传功能降级
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			minioClient = nil
		}
	}

	transformerSvc := NewTransformerService(repos.Transformer, repos.Lamination, repos.WindingSpec, repos.Accessory, repos.Customer)

	return &Services{
		Auth:        NewAuthService(repos.User, rdb, cfg),
		Customer:    NewCustomerService(repos.Customer),
		Catalog:     NewCatalogService(repos.WindingSpec, repos.Accessory, repos.Lamination, rdb),
		Transformer: transformerSvc,
		Export:      NewExportService(transformerSvc),
		Upload:      NewUploadService(minioClient, cfg.MinIO),
	}
}
