package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/model/entity"
	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/repository"
)

// CustomerService 客户服务
type CustomerService struct {
	repo *repository.CustomerRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// CustomerRequest 客户创建/更新请求
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// CustomerListResult 客户列表结果
type CustomerListResult struct {
	Items      []entity.Customer `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// List 获取客户列表
func (s *CustomerService) List(ctx context.Context, page, pageSize int, keyword string) (*CustomerListResult, error) {
	customers, total, err := s.repo.List(ctx, page, pageSize, keyword)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &CustomerListResult{
		Items:      customers,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取客户详情
func (s *CustomerService) Get(ctx context.Context, id int64) (*entity.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("customer", id)
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return customer, nil
}

// Create 创建客户
func (s *CustomerService) Create(ctx context.Context, req *CustomerRequest) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Note:    req.Note,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// Update 更新客户
func (s *CustomerService) Update(ctx context.Context, id int64, req *CustomerRequest) (*entity.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.Note = req.Note

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// Delete 删除客户，名下变压器保留但清空客户引用
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError("customer", id)
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
