package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/model/entity"
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/repository"
)

// TransformerService 变压器装配服务。create/update 的流程固定：
// 先校验线圈组成，再解析目录引用，算好每行成本，最后单事务落库。
// 任何一步失败都不产生部分写入。
type TransformerService struct {
	transformerRepo *repository.TransformerRepository
	laminationRepo  *repository.EiLaminationRepository
	specRepo        *repository.WindingSpecRepository
	accessoryRepo   *repository.AccessoryRepository
	customerRepo    *repository.CustomerRepository
}

// NewTransformerService 创建变压器装配服务
func NewTransformerService(transformerRepo *repository.TransformerRepository, laminationRepo *repository.EiLaminationRepository, specRepo *repository.WindingSpecRepository, accessoryRepo *repository.AccessoryRepository, customerRepo *repository.CustomerRepository) *TransformerService {
	return &TransformerService{
		transformerRepo: transformerRepo,
		laminationRepo:  laminationRepo,
		specRepo:        specRepo,
		accessoryRepo:   accessoryRepo,
		customerRepo:    customerRepo,
	}
}

// WindingUsageRequest 一条线圈用量。Role 按条声明，与线材目录声明的类型无关。
type WindingUsageRequest struct {
	WindingSpecID int64   `json:"winding_spec_id" binding:"required"`
	Role          string  `json:"role" binding:"required,oneof=primary secondary auxiliary"`
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
}

// AccessoryUsageRequest 一条配件用量
type AccessoryUsageRequest struct {
	AccessoryID int64   `json:"accessory_id" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
}

// SquareTransformerRequest 方形变压器创建/更新请求
type SquareTransformerRequest struct {
	Name               string                  `json:"name" binding:"required"`
	Model3DURL         string                  `json:"model3d_url"`
	DrawingConfig      string                  `json:"drawing_config"`
	CustomerID         *int64                  `json:"customer_id"`
	EiLaminationID     int64                   `json:"ei_lamination_id" binding:"required"`
	LaminationWeightKg float64                 `json:"lamination_weight_kg" binding:"required,gt=0"`
	Windings           []WindingUsageRequest   `json:"windings"`
	Accessories        []AccessoryUsageRequest `json:"accessories"`
}

// RoundTransformerRequest 圆形变压器创建/更新请求。
// 圆形铁芯不走目录，重量和单价由请求直接给出。
type RoundTransformerRequest struct {
	Name           string                  `json:"name" binding:"required"`
	Model3DURL     string                  `json:"model3d_url"`
	DrawingConfig  string                  `json:"drawing_config"`
	CustomerID     *int64                  `json:"customer_id"`
	CoreWeightKg   float64                 `json:"core_weight_kg" binding:"required,gt=0"`
	CorePricePerKg float64                 `json:"core_price_per_kg" binding:"gte=0"`
	Windings       []WindingUsageRequest   `json:"windings"`
	Accessories    []AccessoryUsageRequest `json:"accessories"`
}

// CustomerSummary 详情里的客户摘要
type CustomerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SquareCoreDetail 方形铁芯段明细
type SquareCoreDetail struct {
	LaminationID         int64   `json:"lamination_id"`
	LaminationName       string  `json:"lamination_name"`
	LaminationWeightKg   float64 `json:"lamination_weight_kg"`
	LaminationPricePerKg float64 `json:"lamination_price_per_kg"`
	LaminationCost       float64 `json:"lamination_cost"`
	CoreName             string  `json:"core_name"`
	CorePrice            float64 `json:"core_price"`
	Cost                 float64 `json:"cost"`
}

// RoundCoreDetail 圆形铁芯明细
type RoundCoreDetail struct {
	WeightKg   float64 `json:"weight_kg"`
	PricePerKg float64 `json:"price_per_kg"`
	Cost       float64 `json:"cost"`
}

// WindingUsageDetail 线圈用量明细，展示字段回连线材目录
type WindingUsageDetail struct {
	WindingSpecID int64   `json:"winding_spec_id"`
	SpecName      string  `json:"spec_name"`
	Material      string  `json:"material"`
	Role          string  `json:"role"`
	Diameter      float64 `json:"diameter"`
	PricePerKg    float64 `json:"price_per_kg"`
	WeightKg      float64 `json:"weight_kg"`
	Cost          float64 `json:"cost"`
}

// AccessoryUsageDetail 配件用量明细
type AccessoryUsageDetail struct {
	AccessoryID int64   `json:"accessory_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	UnitType    string  `json:"unit_type"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    float64 `json:"quantity"`
	Cost        float64 `json:"cost"`
}

// TransformerDetail 变压器报价详情。成本字段全部是装配时的快照，读取不重算。
type TransformerDetail struct {
	ID            int64                  `json:"id"`
	Name          string                 `json:"name"`
	Type          string                 `json:"type"`
	TotalCost     float64                `json:"total_cost"`
	Model3DURL    string                 `json:"model3d_url"`
	DrawingConfig string                 `json:"drawing_config,omitempty"`
	Customer      *CustomerSummary       `json:"customer,omitempty"`
	SquareCore    *SquareCoreDetail      `json:"square_core,omitempty"`
	RoundCore     *RoundCoreDetail       `json:"round_core,omitempty"`
	Windings      []WindingUsageDetail   `json:"windings"`
	Accessories   []AccessoryUsageDetail `json:"accessories"`
}

// TransformerListResult 变压器列表结果
type TransformerListResult struct {
	Items      []entity.Transformer `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// CreateSquare 创建方形变压器
func (s *TransformerService) CreateSquare(ctx context.Context, req *SquareTransformerRequest) (*TransformerDetail, error) {
	if err := ValidateWindingComposition(req.Windings); err != nil {
		return nil, err
	}

	coreUsage, coreCost, err := s.resolveSquareCore(ctx, req.EiLaminationID, req.LaminationWeightKg)
	if err != nil {
		return nil, err
	}
	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	windings, windingCosts, err := s.resolveWindings(ctx, req.Windings)
	if err != nil {
		return nil, err
	}
	accessories, accessoryCosts, err := s.resolveAccessories(ctx, req.Accessories)
	if err != nil {
		return nil, err
	}

	transformer := &entity.Transformer{
		Name:          req.Name,
		Type:          entity.TransformerTypeSquare,
		TotalCost:     TotalCost(coreCost, windingCosts, accessoryCosts),
		Model3DURL:    req.Model3DURL,
		DrawingConfig: req.DrawingConfig,
		CustomerID:    customerID,
	}

	assembly := &repository.Assembly{
		Transformer: transformer,
		SquareCore:  coreUsage,
		Windings:    windings,
		Accessories: accessories,
	}
	if err := s.transformerRepo.CreateWithUsages(ctx, assembly); err != nil {
		return nil, fmt.Errorf("persist transformer: %w", err)
	}

	return s.Get(ctx, transformer.ID)
}

// UpdateSquare 整体替换方形变压器。形状不可变，旧用量行全部弃置重建。
func (s *TransformerService) UpdateSquare(ctx context.Context, id int64, req *SquareTransformerRequest) (*TransformerDetail, error) {
	if err := ValidateWindingComposition(req.Windings); err != nil {
		return nil, err
	}

	transformer, err := s.findExisting(ctx, id, entity.TransformerTypeSquare)
	if err != nil {
		return nil, err
	}

	coreUsage, coreCost, err := s.resolveSquareCore(ctx, req.EiLaminationID, req.LaminationWeightKg)
	if err != nil {
		return nil, err
	}
	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	windings, windingCosts, err := s.resolveWindings(ctx, req.Windings)
	if err != nil {
		return nil, err
	}
	accessories, accessoryCosts, err := s.resolveAccessories(ctx, req.Accessories)
	if err != nil {
		return nil, err
	}

	transformer.Name = req.Name
	transformer.TotalCost = TotalCost(coreCost, windingCosts, accessoryCosts)
	transformer.Model3DURL = req.Model3DURL
	transformer.DrawingConfig = req.DrawingConfig
	transformer.CustomerID = customerID
	transformer.Customer = nil

	assembly := &repository.Assembly{
		Transformer: transformer,
		SquareCore:  coreUsage,
		Windings:    windings,
		Accessories: accessories,
	}
	if err := s.transformerRepo.ReplaceWithUsages(ctx, assembly); err != nil {
		return nil, fmt.Errorf("persist transformer: %w", err)
	}

	return s.Get(ctx, transformer.ID)
}

// CreateRound 创建圆形变压器
func (s *TransformerService) CreateRound(ctx context.Context, req *RoundTransformerRequest) (*TransformerDetail, error) {
	if err := ValidateWindingComposition(req.Windings); err != nil {
		return nil, err
	}

	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	windings, windingCosts, err := s.resolveWindings(ctx, req.Windings)
	if err != nil {
		return nil, err
	}
	accessories, accessoryCosts, err := s.resolveAccessories(ctx, req.Accessories)
	if err != nil {
		return nil, err
	}

	coreCost := RoundCoreCost(req.CoreWeightKg, req.CorePricePerKg)
	coreUsage := &entity.RoundCoreUsage{
		WeightKg:   req.CoreWeightKg,
		PricePerKg: req.CorePricePerKg,
		Cost:       coreCost,
	}

	transformer := &entity.Transformer{
		Name:          req.Name,
		Type:          entity.TransformerTypeRound,
		TotalCost:     TotalCost(coreCost, windingCosts, accessoryCosts),
		Model3DURL:    req.Model3DURL,
		DrawingConfig: req.DrawingConfig,
		CustomerID:    customerID,
	}

	assembly := &repository.Assembly{
		Transformer: transformer,
		RoundCore:   coreUsage,
		Windings:    windings,
		Accessories: accessories,
	}
	if err := s.transformerRepo.CreateWithUsages(ctx, assembly); err != nil {
		return nil, fmt.Errorf("persist transformer: %w", err)
	}

	return s.Get(ctx, transformer.ID)
}

// UpdateRound 整体替换圆形变压器
func (s *TransformerService) UpdateRound(ctx context.Context, id int64, req *RoundTransformerRequest) (*TransformerDetail, error) {
	if err := ValidateWindingComposition(req.Windings); err != nil {
		return nil, err
	}

	transformer, err := s.findExisting(ctx, id, entity.TransformerTypeRound)
	if err != nil {
		return nil, err
	}

	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	windings, windingCosts, err := s.resolveWindings(ctx, req.Windings)
	if err != nil {
		return nil, err
	}
	accessories, accessoryCosts, err := s.resolveAccessories(ctx, req.Accessories)
	if err != nil {
		return nil, err
	}

	coreCost := RoundCoreCost(req.CoreWeightKg, req.CorePricePerKg)
	coreUsage := &entity.RoundCoreUsage{
		WeightKg:   req.CoreWeightKg,
		PricePerKg: req.CorePricePerKg,
		Cost:       coreCost,
	}

	transformer.Name = req.Name
	transformer.TotalCost = TotalCost(coreCost, windingCosts, accessoryCosts)
	transformer.Model3DURL = req.Model3DURL
	transformer.DrawingConfig = req.DrawingConfig
	transformer.CustomerID = customerID
	transformer.Customer = nil

	assembly := &repository.Assembly{
		Transformer: transformer,
		RoundCore:   coreUsage,
		Windings:    windings,
		Accessories: accessories,
	}
	if err := s.transformerRepo.ReplaceWithUsages(ctx, assembly); err != nil {
		return nil, fmt.Errorf("persist transformer: %w", err)
	}

	return s.Get(ctx, transformer.ID)
}

// Delete 删除变压器及全部用量行
func (s *TransformerService) Delete(ctx context.Context, id int64) error {
	if err := s.transformerRepo.DeleteWithUsages(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError("transformer", id)
		}
		return fmt.Errorf("delete transformer: %w", err)
	}
	return nil
}

// List 获取变压器列表
func (s *TransformerService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*TransformerListResult, error) {
	transformers, total, err := s.transformerRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list transformers: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &TransformerListResult{
		Items:      transformers,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 组装变压器报价详情。只读取落库的快照值，绝不重算成本。
func (s *TransformerService) Get(ctx context.Context, id int64) (*TransformerDetail, error) {
	transformer, err := s.transformerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("transformer", id)
		}
		return nil, fmt.Errorf("find transformer: %w", err)
	}

	detail := &TransformerDetail{
		ID:            transformer.ID,
		Name:          transformer.Name,
		Type:          transformer.Type,
		TotalCost:     transformer.TotalCost,
		Model3DURL:    transformer.Model3DURL,
		DrawingConfig: transformer.DrawingConfig,
		Windings:      []WindingUsageDetail{},
		Accessories:   []AccessoryUsageDetail{},
	}
	if transformer.Customer != nil {
		detail.Customer = &CustomerSummary{
			ID:    transformer.Customer.ID,
			Name:  transformer.Customer.Name,
			Phone: transformer.Customer.Phone,
		}
	}

	switch transformer.Type {
	case entity.TransformerTypeSquare:
		usage, err := s.transformerRepo.FindSquareCoreUsage(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("find square core usage: %w", err)
		}
		if usage != nil {
			coreDetail := &SquareCoreDetail{
				LaminationID:       usage.LaminationID,
				LaminationWeightKg: usage.LaminationWeightKg,
				LaminationCost:     usage.LaminationCost,
				CorePrice:          usage.CorePrice,
				Cost:               usage.Cost,
			}
			if usage.Lamination != nil {
				coreDetail.LaminationName = usage.Lamination.Name
				coreDetail.LaminationPricePerKg = usage.Lamination.PricePerKg
			}
			if usage.EiCore != nil {
				coreDetail.CoreName = usage.EiCore.Name
			}
			detail.SquareCore = coreDetail
		}
	case entity.TransformerTypeRound:
		usage, err := s.transformerRepo.FindRoundCoreUsage(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("find round core usage: %w", err)
		}
		if usage != nil {
			detail.RoundCore = &RoundCoreDetail{
				WeightKg:   usage.WeightKg,
				PricePerKg: usage.PricePerKg,
				Cost:       usage.Cost,
			}
		}
	}

	windings, err := s.transformerRepo.FindWindings(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find windings: %w", err)
	}
	for _, w := range windings {
		line := WindingUsageDetail{
			WindingSpecID: w.WindingSpecID,
			Role:          w.Role,
			WeightKg:      w.WeightKg,
			Cost:          w.Cost,
		}
		if w.WindingSpec != nil {
			line.SpecName = w.WindingSpec.Name
			line.Material = w.WindingSpec.Material
			line.Diameter = w.WindingSpec.Diameter
			line.PricePerKg = w.WindingSpec.PricePerKg
		}
		detail.Windings = append(detail.Windings, line)
	}

	accessories, err := s.transformerRepo.FindAccessoryUsages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find accessory usages: %w", err)
	}
	for _, a := range accessories {
		line := AccessoryUsageDetail{
			AccessoryID: a.AccessoryID,
			Quantity:    a.Quantity,
			Cost:        a.Cost,
		}
		if a.Accessory != nil {
			line.Name = a.Accessory.Name
			line.Type = a.Accessory.Type
			line.UnitType = a.Accessory.UnitType
			line.UnitPrice = a.Accessory.UnitPrice
		}
		detail.Accessories = append(detail.Accessories, line)
	}

	return detail, nil
}

// findExisting 更新前定位目标变压器并校验形状不可变
func (s *TransformerService) findExisting(ctx context.Context, id int64, wantType string) (*entity.Transformer, error) {
	transformer, err := s.transformerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("transformer", id)
		}
		return nil, fmt.Errorf("find transformer: %w", err)
	}
	if transformer.Type != wantType {
		return nil, NewValidationError("transformer %d is %s shaped; shape type cannot be changed", id, transformer.Type)
	}
	return transformer, nil
}

// resolveSquareCore 解析硅钢片及配套骨架并算出铁芯段成本快照
func (s *TransformerService) resolveSquareCore(ctx context.Context, laminationID int64, weightKg float64) (*entity.SquareCoreUsage, float64, error) {
	lamination, err := s.laminationRepo.FindByID(ctx, laminationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, NewNotFoundError("ei lamination", laminationID)
		}
		return nil, 0, fmt.Errorf("find lamination: %w", err)
	}

	core, err := s.laminationRepo.FindCoreByLaminationID(ctx, laminationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, NewIntegrityError("ei lamination %q has no associated core", lamination.Name)
		}
		return nil, 0, fmt.Errorf("find core: %w", err)
	}

	laminationCost := weightKg * lamination.PricePerKg
	cost := LaminationCoreCost(weightKg, lamination.PricePerKg, core.Price)

	usage := &entity.SquareCoreUsage{
		LaminationID:       lamination.ID,
		EiCoreID:           core.ID,
		LaminationWeightKg: weightKg,
		LaminationCost:     laminationCost,
		CorePrice:          core.Price,
		Cost:               cost,
	}
	return usage, cost, nil
}

// resolveWindings 逐条解析线材并算出成本快照
func (s *TransformerService) resolveWindings(ctx context.Context, reqs []WindingUsageRequest) ([]entity.TransformerWinding, []float64, error) {
	windings := make([]entity.TransformerWinding, 0, len(reqs))
	costs := make([]float64, 0, len(reqs))

	for _, req := range reqs {
		spec, err := s.specRepo.FindByID(ctx, req.WindingSpecID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, NewNotFoundError("winding spec", req.WindingSpecID)
			}
			return nil, nil, fmt.Errorf("find winding spec: %w", err)
		}

		cost := WindingCost(req.WeightKg, spec.PricePerKg)
		windings = append(windings, entity.TransformerWinding{
			WindingSpecID: spec.ID,
			Role:          req.Role,
			WeightKg:      req.WeightKg,
			Cost:          cost,
		})
		costs = append(costs, cost)
	}
	return windings, costs, nil
}

// resolveAccessories 逐条解析配件并算出成本快照
func (s *TransformerService) resolveAccessories(ctx context.Context, reqs []AccessoryUsageRequest) ([]entity.TransformerAccessoryUsage, []float64, error) {
	usages := make([]entity.TransformerAccessoryUsage, 0, len(reqs))
	costs := make([]float64, 0, len(reqs))

	for _, req := range reqs {
		accessory, err := s.accessoryRepo.FindByID(ctx, req.AccessoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, NewNotFoundError("accessory", req.AccessoryID)
			}
			return nil, nil, fmt.Errorf("find accessory: %w", err)
		}

		cost := AccessoryCost(req.Quantity, accessory.UnitPrice)
		usages = append(usages, entity.TransformerAccessoryUsage{
			AccessoryID: accessory.ID,
			Quantity:    req.Quantity,
			Cost:        cost,
		})
		costs = append(costs, cost)
	}
	return usages, costs, nil
}

// resolveCustomer 校验可选的客户引用
func (s *TransformerService) resolveCustomer(ctx context.Context, customerID *int64) (*int64, error) {
	if customerID == nil {
		return nil, nil
	}
	if _, err := s.customerRepo.FindByID(ctx, *customerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("customer", *customerID)
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return customerID, nil
}
