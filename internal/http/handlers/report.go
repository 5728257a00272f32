package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sarun2104/training-app/internal/http/response"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/services"
)

type ReportHandler struct {
	log           *logger.Logger
	reportService services.ReportService
}

func NewReportHandler(log *logger.Logger, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		log:           log.With("handler", "ReportHandler"),
		reportService: reportService,
	}
}

func (h *ReportHandler) EmployeeReport(c *gin.Context) {
	report, err := h.reportService.EmployeeReport(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": report})
}

func (h *ReportHandler) CourseStatistics(c *gin.Context) {
	stats, err := h.reportService.CourseStatistics(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": stats})
}

func (h *ReportHandler) CourseDetail(c *gin.Context) {
	detail, err := h.reportService.CourseDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	raw, err := h.reportService.ExportXLSX(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	filename := fmt.Sprintf("training-report-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", raw)
}
