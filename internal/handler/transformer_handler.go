package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/service"
)

// TransformerHandler 变压器处理器
type TransformerHandler struct {
	svc       *service.TransformerService
	exportSvc *service.ExportService
}

// NewTransformerHandler 创建变压器处理器
func NewTransformerHandler(svc *service.TransformerService, exportSvc *service.ExportService) *TransformerHandler {
	return &TransformerHandler{svc: svc, exportSvc: exportSvc}
}

// List 获取变压器列表
func (h *TransformerHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword": c.Query("keyword"),
		"type":    c.Query("type"),
	}
	if cid := c.Query("customer_id"); cid != "" {
		if v, err := strconv.ParseInt(cid, 10, 64); err == nil {
			filters["customer_id"] = v
		}
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// Get 获取变压器报价详情
func (h *TransformerHandler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, detail)
}

// CreateSquare 创建方形变压器
func (h *TransformerHandler) CreateSquare(c *gin.Context) {
	var req service.SquareTransformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	detail, err := h.svc.CreateSquare(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, detail)
}

// UpdateSquare 整体替换方形变压器
func (h *TransformerHandler) UpdateSquare(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	var req service.SquareTransformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	detail, err := h.svc.UpdateSquare(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, detail)
}

// CreateRound 创建圆形变压器
func (h *TransformerHandler) CreateRound(c *gin.Context) {
	var req service.RoundTransformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	detail, err := h.svc.CreateRound(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, detail)
}

// UpdateRound 整体替换圆形变压器
func (h *TransformerHandler) UpdateRound(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	var req service.RoundTransformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	detail, err := h.svc.UpdateRound(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, detail)
}

// Delete 删除变压器
func (h *TransformerHandler) Delete(c *gin.Context) {
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

// Export 导出报价单xlsx
func (h *TransformerHandler) Export(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	file, filename, err := h.exportSvc.ExportQuote(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
