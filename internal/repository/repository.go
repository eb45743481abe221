package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	User        *UserRepository
	Customer    *CustomerRepository
	WindingSpec *WindingSpecRepository
	Accessory   *AccessoryRepository
	Lamination  *EiLaminationRepository
	Transformer *TransformerRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Customer:    NewCustomerRepository(db),
		WindingSpec: NewWindingSpecRepository(db),
		Accessory:   NewAccessoryRepository(db),
		Lamination:  NewEiLaminationRepository(db),
		Transformer: NewTransformerRepository(db),
	}
}
