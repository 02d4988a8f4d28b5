package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/pathweaver/internal/library"
	"github.com/abhisek/pathweaver/internal/logger"
	"github.com/abhisek/pathweaver/internal/pathgen"
	"github.com/abhisek/pathweaver/internal/paths"
	"github.com/abhisek/pathweaver/internal/progress"
	"github.com/abhisek/pathweaver/internal/store"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	generator    *pathgen.Generator
	library      *library.Service
	tracker      *progress.Tracker
	achievements store.AchievementRepo
	stats        store.StatsRepo
	log          *logger.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(generator *pathgen.Generator, lib *library.Service, tracker *progress.Tracker, achievements store.AchievementRepo, stats store.StatsRepo, log *logger.Logger) *Handlers {
	return &Handlers{
		generator:    generator,
		library:      lib,
		tracker:      tracker,
		achievements: achievements,
		stats:        stats,
		log:          log.With("component", "httpapi"),
	}
}

type generateRequest struct {
	Topic      string `json:"topic" binding:"required"`
	SkillLevel string `json:"skillLevel"`
}

// POST /api/paths/generate
func (h *Handlers) GeneratePath(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	path, err := h.generator.Generate(c.Request.Context(), req.Topic, req.SkillLevel)
	if err != nil {
		if errors.Is(err, pathgen.ErrGenerationFailed) {
			RespondError(c, http.StatusBadGateway, "generation_failed", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	if err := h.stats.IncrementPathsGenerated(c.Request.Context()); err != nil {
		h.log.Warn("failed to bump paths_generated", "error", err)
	}

	RespondOK(c, gin.H{"path": path})
}

type quickDiveRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// POST /api/quickdive
func (h *Handlers) QuickDive(c *gin.Context) {
	var req quickDiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	resources := h.generator.QuickDive(c.Request.Context(), req.Topic)

	if err := h.stats.IncrementSearches(c.Request.Context()); err != nil {
		h.log.Warn("failed to bump searches_run", "error", err)
	}

	RespondOK(c, gin.H{"resources": resources})
}

type savePathRequest struct {
	Topic   string        `json:"topic" binding:"required"`
	Payload paths.Payload `json:"payload" binding:"required"`
	Replace bool          `json:"replace"`
}

// POST /api/paths
func (h *Handlers) SavePath(c *gin.Context) {
	var req savePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	row, err := h.library.Save(c.Request.Context(), userID(c), req.Topic, req.Payload, req.Replace)
	if err != nil {
		var dup *store.DuplicateTopicError
		switch {
		case errors.As(err, &dup):
			c.JSON(http.StatusConflict, gin.H{
				"error":          APIError{Message: dup.Error(), Code: "duplicate_topic"},
				"existingPathId": dup.ExistingID,
			})
		case errors.Is(err, paths.ErrValidation):
			RespondError(c, http.StatusUnprocessableEntity, "validation_failed", err)
		default:
			RespondError(c, http.StatusInternalServerError, "internal", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"path": row})
}

// GET /api/paths
func (h *Handlers) ListPaths(c *gin.Context) {
	rows, err := h.library.List(c.Request.Context(), userID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, gin.H{"paths": rows})
}

// GET /api/paths/:id
func (h *Handlers) GetPath(c *gin.Context) {
	id, ok := pathParam(c)
	if !ok {
		return
	}

	got, err := h.library.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	RespondOK(c, got)
}

type toggleRequest struct {
	PositionKey int     `json:"positionKey"`
	ItemType    string  `json:"itemType" binding:"required"`
	ItemIndex   int     `json:"itemIndex"`
	Completed   bool    `json:"completed"`
	Notes       *string `json:"notes"`
}

// POST /api/paths/:id/toggle
func (h *Handlers) ToggleItem(c *gin.Context) {
	id, ok := pathParam(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.tracker.ToggleItem(c.Request.Context(), userID(c), id, progress.ToggleInput{
		PositionKey: req.PositionKey,
		ItemType:    paths.ItemType(req.ItemType),
		ItemIndex:   req.ItemIndex,
		Completed:   req.Completed,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrItemLocked):
			RespondError(c, http.StatusConflict, "item_locked", err)
		case errors.Is(err, paths.ErrValidation):
			RespondError(c, http.StatusUnprocessableEntity, "validation_failed", err)
		default:
			respondLookupError(c, err)
		}
		return
	}
	RespondOK(c, result)
}

// POST /api/paths/:id/restart
func (h *Handlers) RestartPath(c *gin.Context) {
	id, ok := pathParam(c)
	if !ok {
		return
	}
	if err := h.library.Restart(c.Request.Context(), userID(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "restarted"})
}

// DELETE /api/paths/:id
func (h *Handlers) ArchivePath(c *gin.Context) {
	id, ok := pathParam(c)
	if !ok {
		return
	}
	if err := h.library.Archive(c.Request.Context(), userID(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "archived"})
}

// GET /api/achievements
func (h *Handlers) ListAchievements(c *gin.Context) {
	rows, err := h.achievements.ListByUser(c.Request.Context(), nil, userID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, gin.H{"achievements": rows})
}

// GET /api/stats
func (h *Handlers) SiteStats(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, gin.H{
		"pathsGenerated": stats.PathsGenerated,
		"searchesRun":    stats.SearchesRun,
	})
}

// Healthcheck reports liveness.
func Healthcheck(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}

func pathParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid path id"))
		return uuid.Nil, false
	}
	return id, true
}

func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal", err)
}
