package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarun2104/training-app/internal/http/response"
	"github.com/sarun2104/training-app/internal/pkg/ctxutil"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/services"
)

type EmployeeHandler struct {
	log             *logger.Logger
	employeeService services.EmployeeService
}

func NewEmployeeHandler(log *logger.Logger, employeeService services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		log:             log.With("handler", "EmployeeHandler"),
		employeeService: employeeService,
	}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req services.CreateEmployeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	employee, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"employee": employee})
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.List(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"employees": employees})
}

func (h *EmployeeHandler) MyProfile(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	profile, err := h.employeeService.Profile(c.Request.Context(), rd.EmployeeID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, profile)
}

func (h *EmployeeHandler) MyAvatar(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	png, err := h.employeeService.AvatarPNG(c.Request.Context(), rd.EmployeeID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
