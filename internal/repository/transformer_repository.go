package repository

import (
	"context"
	"errors"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/model/entity"
	"gorm.io/gorm"
)

// TransformerRepository 变压器仓库。装配写入（整机+铁芯+线圈+配件）
// 全部走单个事务，保证要么全部落库要么全部回滚。
type TransformerRepository struct {
	db *gorm.DB
}

// NewTransformerRepository 创建变压器仓库
func NewTransformerRepository(db *gorm.DB) *TransformerRepository {
	return &TransformerRepository{db: db}
}

// FindByID 根据ID查找变压器
func (r *TransformerRepository) FindByID(ctx context.Context, id int64) (*entity.Transformer, error) {
	var transformer entity.Transformer
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&transformer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &transformer, nil
}

// List 获取变压器列表
func (r *TransformerRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Transformer, int64, error) {
	var transformers []entity.Transformer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transformer{})

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if transformerType, ok := filters["type"].(string); ok && transformerType != "" {
		query = query.Where("type = ?", transformerType)
	}
	if customerID, ok := filters["customer_id"].(int64); ok && customerID > 0 {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Customer").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&transformers).Error

	return transformers, total, err
}

// FindSquareCoreUsage 查找方形铁芯用量
func (r *TransformerRepository) FindSquareCoreUsage(ctx context.Context, transformerID int64) (*entity.SquareCoreUsage, error) {
	var usage entity.SquareCoreUsage
	err := r.db.WithContext(ctx).
		Preload("Lamination").
		Preload("EiCore").
		Where("transformer_id = ?", transformerID).
		First(&usage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &usage, nil
}

// FindRoundCoreUsage 查找圆形铁芯用量
func (r *TransformerRepository) FindRoundCoreUsage(ctx context.Context, transformerID int64) (*entity.RoundCoreUsage, error) {
	var usage entity.RoundCoreUsage
	err := r.db.WithContext(ctx).
		Where("transformer_id = ?", transformerID).
		First(&usage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &usage, nil
}

// FindWindings 查找线圈用量列表
func (r *TransformerRepository) FindWindings(ctx context.Context, transformerID int64) ([]entity.TransformerWinding, error) {
	var windings []entity.TransformerWinding
	err := r.db.WithContext(ctx).
		Preload("WindingSpec").
		Where("transformer_id = ?", transformerID).
		Order("id ASC").
		Find(&windings).Error
	return windings, err
}

// FindAccessoryUsages 查找配件用量列表
func (r *TransformerRepository) FindAccessoryUsages(ctx context.Context, transformerID int64) ([]entity.TransformerAccessoryUsage, error) {
	var usages []entity.TransformerAccessoryUsage
	err := r.db.WithContext(ctx).
		Preload("Accessory").
		Where("transformer_id = ?", transformerID).
		Order("id ASC").
		Find(&usages).Error
	return usages, err
}

// Assembly 一次装配的全部待写入行。铁芯二选一，与 Transformer.Type 对应。
type Assembly struct {
	Transformer *entity.Transformer
	SquareCore  *entity.SquareCoreUsage
	RoundCore   *entity.RoundCoreUsage
	Windings    []entity.TransformerWinding
	Accessories []entity.TransformerAccessoryUsage
}

// CreateWithUsages 事务内创建变压器及全部用量行
func (r *TransformerRepository) CreateWithUsages(ctx context.Context, assembly *Assembly) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assembly.Transformer).Error; err != nil {
			return err
		}
		return createUsageRows(tx, assembly)
	})
}

// ReplaceWithUsages 事务内整体替换变压器及全部用量行。
// 旧用量行先全部删除再写入新行，绝不部分合并。
func (r *TransformerRepository) ReplaceWithUsages(ctx context.Context, assembly *Assembly) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(assembly.Transformer).Error; err != nil {
			return err
		}
		if err := deleteUsageRows(tx, assembly.Transformer.ID); err != nil {
			return err
		}
		return createUsageRows(tx, assembly)
	})
}

// DeleteWithUsages 事务内删除变压器及全部用量行
func (r *TransformerRepository) DeleteWithUsages(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entity.Transformer{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return deleteUsageRows(tx, id)
	})
}

func createUsageRows(tx *gorm.DB, assembly *Assembly) error {
	transformerID := assembly.Transformer.ID

	if assembly.SquareCore != nil {
		assembly.SquareCore.TransformerID = transformerID
		if err := tx.Create(assembly.SquareCore).Error; err != nil {
			return err
		}
	}
	if assembly.RoundCore != nil {
		assembly.RoundCore.TransformerID = transformerID
		if err := tx.Create(assembly.RoundCore).Error; err != nil {
			return err
		}
	}
	for i := range assembly.Windings {
		assembly.Windings[i].TransformerID = transformerID
		if err := tx.Create(&assembly.Windings[i]).Error; err != nil {
			return err
		}
	}
	for i := range assembly.Accessories {
		assembly.Accessories[i].TransformerID = transformerID
		if err := tx.Create(&assembly.Accessories[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteUsageRows(tx *gorm.DB, transformerID int64) error {
	if err := tx.Where("transformer_id = ?", transformerID).Delete(&entity.SquareCoreUsage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("transformer_id = ?", transformerID).Delete(&entity.RoundCoreUsage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("transformer_id = ?", transformerID).Delete(&entity.TransformerWinding{}).Error; err != nil {
		return err
	}
	return tx.Where("transformer_id = ?", transformerID).Delete(&entity.TransformerAccessoryUsage{}).Error
}
