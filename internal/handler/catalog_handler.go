package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/service"
)

// CatalogHandler 目录处理器
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListWindingSpecs 获取线材列表
func (h *CatalogHandler) ListWindingSpecs(c *gin.Context) {
	specs, err := h.svc.ListWindingSpecs(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, specs)
}

// CreateWindingSpec 创建线材
func (h *CatalogHandler) CreateWindingSpec(c *gin.Context) {
	var req service.WindingSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	spec, err := h.svc.CreateWindingSpec(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, spec)
}

// UpdateWindingSpec 更新线材
func (h *CatalogHandler) UpdateWindingSpec(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	var req service.WindingSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	spec, err := h.svc.UpdateWindingSpec(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, spec)
}

// DeleteWindingSpec 删除线材
func (h *CatalogHandler) DeleteWindingSpec(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteWindingSpec(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// ListAccessories 获取配件列表
func (h *CatalogHandler) ListAccessories(c *gin.Context) {
	accessories, err := h.svc.ListAccessories(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, accessories)
}

// CreateAccessory 创建配件
func (h *CatalogHandler) CreateAccessory(c *gin.Context) {
	var req service.AccessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accessory, err := h.svc.CreateAccessory(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, accessory)
}

// UpdateAccessory 更新配件
func (h *CatalogHandler) UpdateAccessory(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	var req service.AccessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accessory, err := h.svc.UpdateAccessory(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, accessory)
}

// DeleteAccessory 删除配件
func (h *CatalogHandler) DeleteAccessory(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteAccessory(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// ListEiLaminations 获取硅钢片+骨架组合列表
func (h *CatalogHandler) ListEiLaminations(c *gin.Context) {
	laminations, err := h.svc.ListEiLaminations(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, laminations)
}

// CreateEiLamination 创建硅钢片及配套骨架
func (h *CatalogHandler) CreateEiLamination(c *gin.Context) {
	var req service.EiLaminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.svc.CreateEiLamination(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, view)
}

// UpdateEiLamination 更新硅钢片及配套骨架
func (h *CatalogHandler) UpdateEiLamination(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	var req service.EiLaminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.svc.UpdateEiLamination(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, view)
}

// DeleteEiLamination 删除硅钢片及配套骨架
func (h *CatalogHandler) DeleteEiLamination(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteEiLamination(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
