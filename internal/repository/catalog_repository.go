package repository

import (
	"context"
	"errors"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/model/entity"
	"gorm.io/gorm"
)

// WindingSpecRepository 线材目录仓库
type WindingSpecRepository struct {
	db *gorm.DB
}

// NewWindingSpecRepository 创建线材目录仓库
func NewWindingSpecRepository(db *gorm.DB) *WindingSpecRepository {
	return &WindingSpecRepository{db: db}
}

// FindByID 根据ID查找线材
func (r *WindingSpecRepository) FindByID(ctx context.Context, id int64) (*entity.WindingSpec, error) {
	var spec entity.WindingSpec
	err := r.db.WithContext(ctx).First(&spec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spec, nil
}

// List 获取线材列表
func (r *WindingSpecRepository) List(ctx context.Context) ([]entity.WindingSpec, error) {
	var specs []entity.WindingSpec
	err := r.db.WithContext(ctx).Order("name ASC").Find(&specs).Error
	return specs, err
}

// Create 创建线材
func (r *WindingSpecRepository) Create(ctx context.Context, spec *entity.WindingSpec) error {
	return r.db.WithContext(ctx).Create(spec).Error
}

// Update 更新线材
func (r *WindingSpecRepository) Update(ctx context.Context, spec *entity.WindingSpec) error {
	return r.db.WithContext(ctx).Save(spec).Error
}

// Delete 删除线材
func (r *WindingSpecRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entity.WindingSpec{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AccessoryRepository 配件目录仓库
type AccessoryRepository struct {
	db *gorm.DB
}

// NewAccessoryRepository 创建配件目录仓库
func NewAccessoryRepository(db *gorm.DB) *AccessoryRepository {
	return &AccessoryRepository{db: db}
}

// FindByID 根据ID查找配件
func (r *AccessoryRepository) FindByID(ctx context.Context, id int64) (*entity.Accessory, error) {
	var accessory entity.Accessory
	err := r.db.WithContext(ctx).First(&accessory, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &accessory, nil
}

// List 获取配件列表
func (r *AccessoryRepository) List(ctx context.Context) ([]entity.Accessory, error) {
	var accessories []entity.Accessory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&accessories).Error
	return accessories, err
}

// Create 创建配件
func (r *AccessoryRepository) Create(ctx context.Context, accessory *entity.Accessory) error {
	return r.db.WithContext(ctx).Create(accessory).Error
}

// Update 更新配件
func (r *AccessoryRepository) Update(ctx context.Context, accessory *entity.Accessory) error {
	return r.db.WithContext(ctx).Save(accessory).Error
}

// Delete 删除配件
func (r *AccessoryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entity.Accessory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EiLaminationRepository 硅钢片+骨架仓库。两者作为一个组合资源维护，
// 骨架行跟随硅钢片行一起增删。
type EiLaminationRepository struct {
	db *gorm.DB
}

// NewEiLaminationRepository 创建硅钢片仓库
func NewEiLaminationRepository(db *gorm.DB) *EiLaminationRepository {
	return &EiLaminationRepository{db: db}
}

// FindByID 根据ID查找硅钢片
func (r *EiLaminationRepository) FindByID(ctx context.Context, id int64) (*entity.EiLamination, error) {
	var lamination entity.EiLamination
	err := r.db.WithContext(ctx).First(&lamination, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lamination, nil
}

// FindCoreByLaminationID 查找硅钢片配套的骨架
func (r *EiLaminationRepository) FindCoreByLaminationID(ctx context.Context, laminationID int64) (*entity.EiCore, error) {
	var core entity.EiCore
	err := r.db.WithContext(ctx).
		Where("lamination_id = ?", laminationID).
		First(&core).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &core, nil
}

// List 获取硅钢片列表
func (r *EiLaminationRepository) List(ctx context.Context) ([]entity.EiLamination, error) {
	var laminations []entity.EiLamination
	err := r.db.WithContext(ctx).Order("name ASC").Find(&laminations).Error
	return laminations, err
}

// ListCores 获取全部骨架，按硅钢片ID索引
func (r *EiLaminationRepository) ListCores(ctx context.Context) (map[int64]entity.EiCore, error) {
	var cores []entity.EiCore
	if err := r.db.WithContext(ctx).Find(&cores).Error; err != nil {
		return nil, err
	}
	byLamination := make(map[int64]entity.EiCore, len(cores))
	for _, core := range cores {
		byLamination[core.LaminationID] = core
	}
	return byLamination, nil
}

// CreateWithCore 创建硅钢片及配套骨架
func (r *EiLaminationRepository) CreateWithCore(ctx context.Context, lamination *entity.EiLamination, core *entity.EiCore) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lamination).Error; err != nil {
			return err
		}
		if core != nil {
			core.LaminationID = lamination.ID
			if err := tx.Create(core).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithCore 更新硅钢片及配套骨架。骨架行不存在则补建。
func (r *EiLaminationRepository) UpdateWithCore(ctx context.Context, lamination *entity.EiLamination, core *entity.EiCore) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(lamination).Error; err != nil {
			return err
		}
		if core != nil {
			core.LaminationID = lamination.ID
			if err := tx.Save(core).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteWithCore 删除硅钢片及配套骨架
func (r *EiLaminationRepository) DeleteWithCore(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entity.EiLamination{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("lamination_id = ?", id).Delete(&entity.EiCore{}).Error
	})
}
