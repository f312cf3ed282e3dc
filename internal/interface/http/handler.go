package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/leetlens/internal/domain/analysis"
	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/domain/visitlog"
	"github.com/yanqian/leetlens/pkg/util"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	profileSvc  profile.Service
	analysisSvc analysis.Service
	visitSvc    visitlog.Service
	logger      *slog.Logger
	now         func() time.Time
}

// NewHandler constructs the root HTTP handler.
func NewHandler(profileSvc profile.Service, analysisSvc analysis.Service, visitSvc visitlog.Service, logger *slog.Logger) *Handler {
	return &Handler{
		profileSvc:  profileSvc,
		analysisSvc: analysisSvc,
		visitSvc:    visitSvc,
		logger:      logger.With("component", "http.handler"),
		now:         util.NowUTC,
	}
}

// SummaryResponse is the body of the summary endpoint.
type SummaryResponse struct {
	Summary         string         `json:"summary"`
	Weaknesses      []string       `json:"weaknesses"`
	Suggestions     []string       `json:"suggestions"`
	Score           float64        `json:"score"`
	ExperienceLevel analysis.Level `json:"experienceLevel"`
	Timestamp       time.Time      `json:"timestamp"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Profile returns the normalized profile resolved by the middleware.
func (h *Handler) Profile(c *gin.Context) {
	resolved, _, ok := profileFromContext(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "internal_error", "profile missing from request", nil))
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// Summary runs the competency assessment. It always answers 200 once the
// profile resolved; LLM failures surface as a degraded body.
func (h *Handler) Summary(c *gin.Context) {
	resolved, ts, ok := profileFromContext(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "internal_error", "profile missing from request", nil))
		return
	}
	result := h.analysisSvc.Assess(c.Request.Context(), resolved)
	c.JSON(http.StatusOK, SummaryResponse{
		Summary:         result.Summary,
		Weaknesses:      result.Weaknesses,
		Suggestions:     result.Suggestions,
		Score:           result.Score,
		ExperienceLevel: result.ExperienceLevel,
		Timestamp:       ts,
	})
}

// CreateLog records a new visit.
func (h *Handler) CreateLog(c *gin.Context) {
	var req visitlog.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}
	entry, err := h.visitSvc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Log created successfully", "log": entry})
}

// UpdateLog attaches profile details to a visit.
func (h *Handler) UpdateLog(c *gin.Context) {
	var req visitlog.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}
	entry, err := h.visitSvc.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated successfully", "log": entry})
}

// ScrollLog records whether the visitor scrolled to the end.
func (h *Handler) ScrollLog(c *gin.Context) {
	var req visitlog.ScrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}
	entry, err := h.visitSvc.MarkScrolled(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Scroll status updated", "log": entry})
}
