package entity

import (
	"time"
)

// WindingSpec 线材目录定义：材质、线径、每公斤单价。
// 只读参考数据，变压器装配时只拷贝价格快照。
type WindingSpec struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Type        string    `json:"type" gorm:"size:20;not null"`
	Material    string    `json:"material" gorm:"size:20;not null"`
	Diameter    float64   `json:"diameter" gorm:"not null"`
	PricePerKg  float64   `json:"price_per_kg" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (WindingSpec) TableName() string {
	return "winding_specs"
}

// WindingMaterial 线材材质
const (
	WindingMaterialCopper   = "copper"
	WindingMaterialAluminum = "aluminum"
)

// WindingRole 线圈角色。目录里的 Type 与装配时每条用量声明的角色共用同一组值。
const (
	WindingRolePrimary   = "primary"
	WindingRoleSecondary = "secondary"
	WindingRoleAuxiliary = "auxiliary"
)

// Accessory 配件目录项（支架、端子等），按件或按公斤计价。
type Accessory struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Type        string    `json:"type" gorm:"size:30;not null"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Description string    `json:"description" gorm:"type:text"`
	UnitType    string    `json:"unit_type" gorm:"size:20;not null;default:pcs"`
	UnitPrice   float64   `json:"unit_price" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Accessory) TableName() string {
	return "accessories"
}

// AccessoryType 配件类别
const (
	AccessoryTypeBracket    = "bracket"
	AccessoryTypeTerminal   = "terminal"
	AccessoryTypeBobbin     = "bobbin"
	AccessoryTypeInsulation = "insulation"
	AccessoryTypeOther      = "other"
)

// AccessoryUnitType 配件计价单位
const (
	AccessoryUnitPCS = "pcs"
	AccessoryUnitKG  = "kg"
	AccessoryUnitM   = "m"
	AccessoryUnitSet = "set"
)

// EiLamination 方形变压器用的硅钢片，按公斤计价。
type EiLamination struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PricePerKg  float64   `json:"price_per_kg" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (EiLamination) TableName() string {
	return "ei_laminations"
}

// EiCore 与某种硅钢片一一配套的固定价格骨架件。
// LaminationID 唯一：一种硅钢片最多只有一个配套骨架。
type EiCore struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	LaminationID int64     `json:"lamination_id" gorm:"not null;uniqueIndex"`
	Name         string    `json:"name" gorm:"size:128;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Price        float64   `json:"price" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 关联
	Lamination *EiLamination `json:"lamination,omitempty" gorm:"foreignKey:LaminationID"`
}

func (EiCore) TableName() string {
	return "ei_cores"
}
