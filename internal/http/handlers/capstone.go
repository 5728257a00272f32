package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarun2104/training-app/internal/http/response"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/services"
)

type CapstoneHandler struct {
	log             *logger.Logger
	capstoneService services.CapstoneService
}

func NewCapstoneHandler(log *logger.Logger, capstoneService services.CapstoneService) *CapstoneHandler {
	return &CapstoneHandler{
		log:             log.With("handler", "CapstoneHandler"),
		capstoneService: capstoneService,
	}
}

func (h *CapstoneHandler) Create(c *gin.Context) {
	var req services.CreateCapstoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	capstone, err := h.capstoneService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"capstone": capstone})
}

func (h *CapstoneHandler) List(c *gin.Context) {
	capstones, err := h.capstoneService.List(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"capstones": capstones})
}

func (h *CapstoneHandler) Get(c *gin.Context) {
	capstone, err := h.capstoneService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"capstone": capstone})
}
