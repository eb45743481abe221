package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/service"
)

// CustomerHandler 客户处理器
type CustomerHandler struct {
	svc *service.CustomerService
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List 获取客户列表
func (h *CustomerHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	result, err := h.svc.List(c.Request.Context(), page, pageSize, c.Query("keyword"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// Get 获取客户详情
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	customer, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, customer)
}

// Create 创建客户
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, customer)
}

// Update 更新客户
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, customer)
}

// Delete 删除客户
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
