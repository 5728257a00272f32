package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarun2104/training-app/internal/http/response"
	"github.com/sarun2104/training-app/internal/pkg/ctxutil"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/services"
)

type AuthHandler struct {
	log             *logger.Logger
	authService     services.AuthService
	employeeService services.EmployeeService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, employeeService services.EmployeeService) *AuthHandler {
	return &AuthHandler{
		log:             log.With("handler", "AuthHandler"),
		authService:     authService,
		employeeService: employeeService,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	token, employee, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(h.authService.AccessTTL().Seconds()),
		"employee":     employee,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	employee, err := h.employeeService.Get(c.Request.Context(), rd.EmployeeID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"employee": employee})
}

// Logout is stateless; the client discards the token. The endpoint exists so
// frontends have a uniform call to make.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.RespondOK(c, gin.H{"status": "logged_out"})
}
