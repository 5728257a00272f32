package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarun2104/training-app/internal/http/response"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/services"
)

type AssignmentHandler struct {
	log               *logger.Logger
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(log *logger.Logger, assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		log:               log.With("handler", "AssignmentHandler"),
		assignmentService: assignmentService,
	}
}

func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req services.AssignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.assignmentService.Assign(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, result)
}
