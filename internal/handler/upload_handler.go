package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/truongthinh1512/AnThinh-PriceCalculator/internal/service"
)

// UploadHandler 文件上传处理器
type UploadHandler struct {
	svc *service.UploadService
}

// NewUploadHandler 创建上传处理器
func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadModel 上传3D模型/图纸文件，返回可写进变压器 model3d_url 的地址
func (h *UploadHandler) UploadModel(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.svc.UploadModelFile(c.Request.Context(), file, fileHeader.Size, fileHeader.Filename, contentType)
	if err != nil {
		if errors.Is(err, service.ErrStorageNotConfigured) {
			Error(c, 50300, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{"url": url})
}
