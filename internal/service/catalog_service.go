package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/model/entity"
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/repository"
)

const (
	cacheKeyWindingSpecs = "catalog:winding-specs"
	cacheKeyAccessories  = "catalog:accessories"
	cacheKeyLaminations  = "catalog:ei-laminations"
	catalogCacheTTL      = 10 * time.Minute
)

// CatalogService 目录服务：线材、配件、硅钢片+骨架的维护。
// 列表走Redis缓存，任何变更后整体失效。
type CatalogService struct {
	specRepo       *repository.WindingSpecRepository
	accessoryRepo  *repository.AccessoryRepository
	laminationRepo *repository.EiLaminationRepository
	rdb            *redis.Client
}

// NewCatalogService 创建目录服务
func NewCatalogService(specRepo *repository.WindingSpecRepository, accessoryRepo *repository.AccessoryRepository, laminationRepo *repository.EiLaminationRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		specRepo:       specRepo,
		accessoryRepo:  accessoryRepo,
		laminationRepo: laminationRepo,
		rdb:            rdb,
	}
}

// WindingSpecRequest 线材创建/更新请求
type WindingSpecRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" binding:"required,oneof=primary secondary auxiliary"`
	Material    string  `json:"material" binding:"required,oneof=copper aluminum"`
	Diameter    float64 `json:"diameter" binding:"required,gt=0"`
	PricePerKg  float64 `json:"price_per_kg" binding:"gte=0"`
}

// AccessoryRequest 配件创建/更新请求
type AccessoryRequest struct {
	Type        string  `json:"type" binding:"required,oneof=bracket terminal bobbin insulation other"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	UnitType    string  `json:"unit_type" binding:"required,oneof=pcs kg m set"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

// EiCoreFields 组合资源里的骨架字段
type EiCoreFields struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// EiLaminationRequest 硅钢片+骨架组合创建/更新请求
type EiLaminationRequest struct {
	Name        string        `json:"name" binding:"required"`
	Description string        `json:"description"`
	PricePerKg  float64       `json:"price_per_kg" binding:"gte=0"`
	Core        *EiCoreFields `json:"core"`
}

// EiLaminationView 硅钢片+骨架组合视图
type EiLaminationView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PricePerKg  float64 `json:"price_per_kg"`

	CoreID          *int64  `json:"core_id,omitempty"`
	CoreName        string  `json:"core_name,omitempty"`
	CoreDescription string  `json:"core_description,omitempty"`
	CorePrice       float64 `json:"core_price,omitempty"`
}

// ListWindingSpecs 获取线材列表
func (s *CatalogService) ListWindingSpecs(ctx context.Context) ([]entity.WindingSpec, error) {
	var specs []entity.WindingSpec
	if s.cacheGet(ctx, cacheKeyWindingSpecs, &specs) {
		return specs, nil
	}

	specs, err := s.specRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list winding specs: %w", err)
	}
	s.cacheSet(ctx, cacheKeyWindingSpecs, specs)
	return specs, nil
}

// CreateWindingSpec 创建线材
func (s *CatalogService) CreateWindingSpec(ctx context.Context, req *WindingSpecRequest) (*entity.WindingSpec, error) {
	spec := &entity.WindingSpec{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Material:    req.Material,
		Diameter:    req.Diameter,
		PricePerKg:  req.PricePerKg,
	}
	if err := s.specRepo.Create(ctx, spec); err != nil {
		return nil, fmt.Errorf("create winding spec: %w", err)
	}
	s.clearCache(ctx, cacheKeyWindingSpecs)
	return spec, nil
}

// UpdateWindingSpec 更新线材
func (s *CatalogService) UpdateWindingSpec(ctx context.Context, id int64, req *WindingSpecRequest) (*entity.WindingSpec, error) {
	spec, err := s.specRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("winding spec", id)
		}
		return nil, fmt.Errorf("find winding spec: %w", err)
	}

	spec.Name = req.Name
	spec.Description = req.Description
	spec.Type = req.Type
	spec.Material = req.Material
	spec.Diameter = req.Diameter
	spec.PricePerKg = req.PricePerKg

	if err := s.specRepo.Update(ctx, spec); err != nil {
		return nil, fmt.Errorf("update winding spec: %w", err)
	}
	s.clearCache(ctx, cacheKeyWindingSpecs)
	return spec, nil
}

// DeleteWindingSpec 删除线材。已保存报价里的用量行存的是快照值，不受影响。
func (s *CatalogService) DeleteWindingSpec(ctx context.Context, id int64) error {
	if err := s.specRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError("winding spec", id)
		}
		return fmt.Errorf("delete winding spec: %w", err)
	}
	s.clearCache(ctx, cacheKeyWindingSpecs)
	return nil
}

// ListAccessories 获取配件列表
func (s *CatalogService) ListAccessories(ctx context.Context) ([]entity.Accessory, error) {
	var accessories []entity.Accessory
	if s.cacheGet(ctx, cacheKeyAccessories, &accessories) {
		return accessories, nil
	}

	accessories, err := s.accessoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accessories: %w", err)
	}
	s.cacheSet(ctx, cacheKeyAccessories, accessories)
	return accessories, nil
}

// CreateAccessory 创建配件
func (s *CatalogService) CreateAccessory(ctx context.Context, req *AccessoryRequest) (*entity.Accessory, error) {
	accessory := &entity.Accessory{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		UnitType:    req.UnitType,
		UnitPrice:   req.UnitPrice,
	}
	if err := s.accessoryRepo.Create(ctx, accessory); err != nil {
		return nil, fmt.Errorf("create accessory: %w", err)
	}
	s.clearCache(ctx, cacheKeyAccessories)
	return accessory, nil
}

// UpdateAccessory 更新配件
func (s *CatalogService) UpdateAccessory(ctx context.Context, id int64, req *AccessoryRequest) (*entity.Accessory, error) {
	accessory, err := s.accessoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("accessory", id)
		}
		return nil, fmt.Errorf("find accessory: %w", err)
	}

	accessory.Type = req.Type
	accessory.Name = req.Name
	accessory.Description = req.Description
	accessory.UnitType = req.UnitType
	accessory.UnitPrice = req.UnitPrice

	if err := s.accessoryRepo.Update(ctx, accessory); err != nil {
		return nil, fmt.Errorf("update accessory: %w", err)
	}
	s.clearCache(ctx, cacheKeyAccessories)
	return accessory, nil
}

// DeleteAccessory 删除配件
func (s *CatalogService) DeleteAccessory(ctx context.Context, id int64) error {
	if err := s.accessoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError("accessory", id)
		}
		return fmt.Errorf("delete accessory: %w", err)
	}
	s.clearCache(ctx, cacheKeyAccessories)
	return nil
}

// ListEiLaminations 获取硅钢片+骨架组合列表
func (s *CatalogService) ListEiLaminations(ctx context.Context) ([]EiLaminationView, error) {
	var views []EiLaminationView
	if s.cacheGet(ctx, cacheKeyLaminations, &views) {
		return views, nil
	}

	laminations, err := s.laminationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list laminations: %w", err)
	}
	cores, err := s.laminationRepo.ListCores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cores: %w", err)
	}

	views = make([]EiLaminationView, 0, len(laminations))
	for _, lamination := range laminations {
		view := EiLaminationView{
			ID:          lamination.ID,
			Name:        lamination.Name,
			Description: lamination.Description,
			PricePerKg:  lamination.PricePerKg,
		}
		if core, ok := cores[lamination.ID]; ok {
			coreID := core.ID
			view.CoreID = &coreID
			view.CoreName = core.Name
			view.CoreDescription = core.Description
			view.CorePrice = core.Price
		}
		views = append(views, view)
	}
	s.cacheSet(ctx, cacheKeyLaminations, views)
	return views, nil
}

// CreateEiLamination 创建硅钢片及配套骨架
func (s *CatalogService) CreateEiLamination(ctx context.Context, req *EiLaminationRequest) (*EiLaminationView, error) {
	lamination := &entity.EiLamination{
		Name:        req.Name,
		Description: req.Description,
		PricePerKg:  req.PricePerKg,
	}
	var core *entity.EiCore
	if req.Core != nil {
		core = &entity.EiCore{
			Name:        req.Core.Name,
			Description: req.Core.Description,
			Price:       req.Core.Price,
		}
	}

	if err := s.laminationRepo.CreateWithCore(ctx, lamination, core); err != nil {
		return nil, fmt.Errorf("create lamination: %w", err)
	}
	s.clearCache(ctx, cacheKeyLaminations)
	return buildLaminationView(lamination, core), nil
}

// UpdateEiLamination 更新硅钢片及配套骨架
func (s *CatalogService) UpdateEiLamination(ctx context.Context, id int64, req *EiLaminationRequest) (*EiLaminationView, error) {
	lamination, err := s.laminationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("ei lamination", id)
		}
		return nil, fmt.Errorf("find lamination: %w", err)
	}

	lamination.Name = req.Name
	lamination.Description = req.Description
	lamination.PricePerKg = req.PricePerKg

	var core *entity.EiCore
	if req.Core != nil {
		core, err = s.laminationRepo.FindCoreByLaminationID(ctx, id)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("find core: %w", err)
			}
			core = &entity.EiCore{}
		}
		core.Name = req.Core.Name
		core.Description = req.Core.Description
		core.Price = req.Core.Price
	}

	if err := s.laminationRepo.UpdateWithCore(ctx, lamination, core); err != nil {
		return nil, fmt.Errorf("update lamination: %w", err)
	}
	s.clearCache(ctx, cacheKeyLaminations)
	return buildLaminationView(lamination, core), nil
}

// DeleteEiLamination 删除硅钢片及配套骨架
func (s *CatalogService) DeleteEiLamination(ctx context.Context, id int64) error {
	if err := s.laminationRepo.DeleteWithCore(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError("ei lamination", id)
		}
		return fmt.Errorf("delete lamination: %w", err)
	}
	s.clearCache(ctx, cacheKeyLaminations)
	return nil
}

func buildLaminationView(lamination *entity.EiLamination, core *entity.EiCore) *EiLaminationView {
	view := &EiLaminationView{
		ID:          lamination.ID,
		Name:        lamination.Name,
		Description: lamination.Description,
		PricePerKg:  lamination.PricePerKg,
	}
	if core != nil {
		coreID := core.ID
		view.CoreID = &coreID
		view.CoreName = core.Name
		view.CoreDescription = core.Description
		view.CorePrice = core.Price
	}
	return view
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		s.rdb.Set(ctx, key, data, catalogCacheTTL)
	}
}

func (s *CatalogService) clearCache(ctx context.Context, key string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, key)
}
