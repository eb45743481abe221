package entity

import (
	"time"
)

// Customer 客户档案，可被多个变压器报价引用。
type Customer struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Phone     string    `json:"phone" gorm:"size:32"`
	Address   string    `json:"address" gorm:"size:256"`
	Note      string    `json:"note" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
