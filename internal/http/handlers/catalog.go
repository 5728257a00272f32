package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/http/response"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/services"
)

type CatalogHandler struct {
	log            *logger.Logger
	catalogService services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:            log.With("handler", "CatalogHandler"),
		catalogService: catalogService,
	}
}

type createTrackRequest struct {
	TrackName string `json:"track_name"`
}

func (h *CatalogHandler) CreateTrack(c *gin.Context) {
	var req createTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	track, err := h.catalogService.CreateTrack(c.Request.Context(), req.TrackName)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"track": track})
}

type createSubTrackRequest struct {
	SubTrackName string `json:"subtrack_name"`
	TrackID      string `json:"track_id"`
}

func (h *CatalogHandler) CreateSubTrack(c *gin.Context) {
	var req createSubTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	subtrack, err := h.catalogService.CreateSubTrack(c.Request.Context(), req.SubTrackName, req.TrackID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"subtrack": subtrack})
}

type createCourseRequest struct {
	CourseName string `json:"course_name"`
	ParentID   string `json:"parent_id"`
	ParentKind string `json:"parent_kind"`
}

func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	course, err := h.catalogService.CreateCourse(c.Request.Context(), req.CourseName, req.ParentID, types.NodeKind(req.ParentKind))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"course": course})
}

type addLinkRequest struct {
	CourseID  string `json:"course_id"`
	Link      string `json:"link"`
	LinkLabel string `json:"link_label"`
}

func (h *CatalogHandler) AddLink(c *gin.Context) {
	var req addLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	link, err := h.catalogService.AddLink(c.Request.Context(), req.CourseID, req.Link, req.LinkLabel)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"link": link})
}

type renameRequest struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	NewName string `json:"new_name"`
}

func (h *CatalogHandler) Rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	switch types.NodeKind(req.Kind) {
	case types.KindTrack, types.KindSubTrack, types.KindCourse:
	default:
		response.RespondError(c, http.StatusBadRequest, "bad_kind", nil)
		return
	}
	newID, err := h.catalogService.Rename(c.Request.Context(), types.NodeKind(req.Kind), req.ID, req.NewName)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"old_id": req.ID, "new_id": newID})
}

func (h *CatalogHandler) ListTracks(c *gin.Context) {
	tracks, err := h.catalogService.ListTracks(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tracks": tracks})
}

func (h *CatalogHandler) Tree(c *gin.Context) {
	tree, err := h.catalogService.Tree(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tracks": tree})
}
