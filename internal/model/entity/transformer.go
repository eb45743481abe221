package entity

import (
	"time"
)

// TransformerType 变压器形状
const (
	TransformerTypeSquare = "square"
	TransformerTypeRound  = "round"
)

// Transformer 变压器报价聚合根。TotalCost 是装配时算好的快照值，
// 读取时不重算；目录价格之后变动不影响已保存的报价。
type Transformer struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"size:128;not null"`
	Type          string    `json:"type" gorm:"size:20;not null"`
	TotalCost     float64   `json:"total_cost" gorm:"not null"`
	Model3DURL    string    `json:"model3d_url" gorm:"column:model3d_url;size:512"`
	DrawingConfig string    `json:"drawing_config" gorm:"type:text"`
	CustomerID    *int64    `json:"customer_id" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 关联
	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Transformer) TableName() string {
	return "transformers"
}

// SquareCoreUsage 方形变压器的铁芯用量，一台变压器一条。
// LaminationCost/CorePrice/Cost 均为装配时快照。
type SquareCoreUsage struct {
	ID                 int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	TransformerID      int64   `json:"transformer_id" gorm:"not null;uniqueIndex"`
	LaminationID       int64   `json:"lamination_id" gorm:"not null"`
	EiCoreID           int64   `json:"ei_core_id" gorm:"not null"`
	LaminationWeightKg float64 `json:"lamination_weight_kg" gorm:"not null"`
	LaminationCost     float64 `json:"lamination_cost" gorm:"not null"`
	CorePrice          float64 `json:"core_price" gorm:"not null"`
	Cost               float64 `json:"cost" gorm:"not null"`

	// 关联
	Lamination *EiLamination `json:"lamination,omitempty" gorm:"foreignKey:LaminationID"`
	EiCore     *EiCore       `json:"ei_core,omitempty" gorm:"foreignKey:EiCoreID"`
}

func (SquareCoreUsage) TableName() string {
	return "square_core_usages"
}

// RoundCoreUsage 圆形变压器的铁芯用量，重量和单价由请求直接给出，不走目录。
type RoundCoreUsage struct {
	ID            int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	TransformerID int64   `json:"transformer_id" gorm:"not null;uniqueIndex"`
	WeightKg      float64 `json:"weight_kg" gorm:"not null"`
	PricePerKg    float64 `json:"price_per_kg" gorm:"not null"`
	Cost          float64 `json:"cost" gorm:"not null"`
}

func (RoundCoreUsage) TableName() string {
	return "round_core_usages"
}

// TransformerWinding 一台变压器的一条线圈用量。
// Role 由请求逐条声明，与线材目录里声明的 Type 无关。
type TransformerWinding struct {
	ID            int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	TransformerID int64   `json:"transformer_id" gorm:"not null;index"`
	WindingSpecID int64   `json:"winding_spec_id" gorm:"not null"`
	Role          string  `json:"role" gorm:"size:20;not null"`
	WeightKg      float64 `json:"weight_kg" gorm:"not null"`
	Cost          float64 `json:"cost" gorm:"not null"`

	// 关联
	WindingSpec *WindingSpec `json:"winding_spec,omitempty" gorm:"foreignKey:WindingSpecID"`
}

func (TransformerWinding) TableName() string {
	return "transformer_windings"
}

// TransformerAccessoryUsage 一台变压器的一条配件用量。
type TransformerAccessoryUsage struct {
	ID            int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	TransformerID int64   `json:"transformer_id" gorm:"not null;index"`
	AccessoryID   int64   `json:"accessory_id" gorm:"not null"`
	Quantity      float64 `json:"quantity" gorm:"not null"`
	Cost          float64 `json:"cost" gorm:"not null"`

	// 关联
	Accessory *Accessory `json:"accessory,omitempty" gorm:"foreignKey:AccessoryID"`
}

func (TransformerAccessoryUsage) TableName() string {
	return "transformer_accessory_usages"
}
