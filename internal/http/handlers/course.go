package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarun2104/training-app/internal/http/response"
	"github.com/sarun2104/training-app/internal/pkg/ctxutil"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/services"
)

type CourseHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
	catalogService  services.CatalogService
}

func NewCourseHandler(log *logger.Logger, progressService services.ProgressService, catalogService services.CatalogService) *CourseHandler {
	return &CourseHandler{
		log:             log.With("handler", "CourseHandler"),
		progressService: progressService,
		catalogService:  catalogService,
	}
}

func (h *CourseHandler) MyCourses(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courses, err := h.progressService.MyCourses(c.Request.Context(), rd.EmployeeID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": courses})
}

// CourseDetail is access-gated: the caller must hold a progress row for the
// course.
func (h *CourseHandler) CourseDetail(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courseID := c.Param("id")
	if _, err := h.progressService.RequireAccess(c.Request.Context(), nil, rd.EmployeeID, courseID); err != nil {
		response.RespondAppError(c, err)
		return
	}
	detail, err := h.catalogService.CourseDetail(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course": detail})
}

func (h *CourseHandler) StartCourse(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	row, err := h.progressService.StartCourse(c.Request.Context(), rd.EmployeeID, c.Param("id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": row})
}
