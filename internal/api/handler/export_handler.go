package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/internal/dto"
	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportQuery 导出即席查询结果
// POST /api/v1/admin/query/export?format=csv|xlsx
func (h *ExportHandler) ExportQuery(c *gin.Context) {
	var format dto.ExportFormatRequest
	if err := c.ShouldBindQuery(&format); err != nil {
		response.BadRequest(c, "format 只支持 csv 或 xlsx")
		return
	}

	var req dto.QueryRequest
	if !bindJSON(c, &req) {
		return
	}

	file, err := h.exportSvc.ExportQuery(c.Request.Context(), req.SQL, format.Format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	writeAttachment(c, file)
}

// ExportCalendar 活动日历
// GET /api/v1/activities/calendar.ics
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	file, err := h.exportSvc.ExportActivitiesCalendar(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data.Bytes())
}

// writeAttachment 设置下载响应头后写入文件内容
func writeAttachment(c *gin.Context, file *service.ExportFile) {
	encodedFilename := url.QueryEscape(file.Filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, file.ContentType, file.Data.Bytes())
}
