package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/solvenote/solvenote/internal/cache"
	"github.com/solvenote/solvenote/internal/filter"
	"github.com/solvenote/solvenote/internal/model"
	"github.com/solvenote/solvenote/internal/service"
)

// NewHandler creates the HTTP handler set.
func NewHandler(notes *service.NoteService, progress *service.ProgressService, stats *service.StatsService, statsCache cache.StatsCache) *Handler {
	return &Handler{
		notes:      notes,
		progress:   progress,
		stats:      stats,
		statsCache: statsCache,
	}
}

type Handler struct {
	notes      *service.NoteService
	progress   *service.ProgressService
	stats      *service.StatsService
	statsCache cache.StatsCache
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", h.health)

	v1 := router.Group("/v1")
	v1.GET("/notes", h.listNotes)
	v1.POST("/notes", h.createNote)
	v1.GET("/notes/:id", h.getNote)
	v1.PATCH("/notes/:id", h.updateNote)
	v1.DELETE("/notes/:id", h.deleteNote)
	v1.POST("/notes/:id/checkin", h.checkIn)
	v1.GET("/slugs/:slug", h.getNoteBySlug)
	v1.GET("/facets", h.facets)
	v1.GET("/stats", h.dashboardStats)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listNotes answers the faceted listing query. A single `mode` param is
// the default for both groups; `tagsMode`/`sourcesMode` override it per
// group.
func (h *Handler) listNotes(c *gin.Context) {
	difficulty := model.Difficulty(strings.ToUpper(strings.TrimSpace(c.Query("difficulty"))))
	if difficulty != "" && !difficulty.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidDifficulty.Error()})
		return
	}

	mode := filter.ParseMode(c.Query("mode"), filter.ModeAnd)

	params := service.ListParams{
		Filter: filter.Selection{
			Difficulty:  difficulty,
			Tags:        splitCSV(c.Query("tags")),
			TagsMode:    filter.ParseMode(c.Query("tagsMode"), mode),
			Sources:     splitCSV(c.Query("sources")),
			SourcesMode: filter.ParseMode(c.Query("sourcesMode"), mode),
		},
		Search:   c.Query("q"),
		Sort:     service.ParseSortKey(c.Query("sort")),
		Order:    service.ParseSortOrder(c.Query("order")),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", service.DefaultPageSize),
	}

	list, err := h.notes.List(c.Request.Context(), params)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

type createNoteRequest struct {
	Title       string           `json:"title" binding:"required"`
	Content     json.RawMessage  `json:"content"`
	Tags        []string         `json:"tags"`
	Difficulty  model.Difficulty `json:"difficulty" binding:"required"`
	Sources     []string         `json:"sources" binding:"required,min=1"`
	Independent bool             `json:"independent"`
	ProblemURL  *string          `json:"problemUrl"`
}

func (h *Handler) createNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.CreateNote(c.Request.Context(), service.CreateNoteInput{
		Title:       req.Title,
		Content:     req.Content,
		Tags:        req.Tags,
		Difficulty:  req.Difficulty,
		Sources:     req.Sources,
		Independent: req.Independent,
		ProblemURL:  req.ProblemURL,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.dropStats(c.Request.Context())

	c.JSON(http.StatusCreated, note)
}

type updateNoteRequest struct {
	Title       *string           `json:"title"`
	Content     json.RawMessage   `json:"content"`
	Tags        []string          `json:"tags"`
	Difficulty  *model.Difficulty `json:"difficulty"`
	Sources     []string          `json:"sources"`
	Independent *bool             `json:"independent"`
	ProblemURL  *string           `json:"problemUrl"`
}

func (h *Handler) updateNote(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.UpdateNote(c.Request.Context(), c.Param("id"), service.UpdateNoteInput{
		Title:       req.Title,
		Content:     req.Content,
		Tags:        req.Tags,
		Difficulty:  req.Difficulty,
		Sources:     req.Sources,
		Independent: req.Independent,
		ProblemURL:  req.ProblemURL,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.dropStats(c.Request.Context())

	c.JSON(http.StatusOK, note)
}

func (h *Handler) getNote(c *gin.Context) {
	note, err := h.notes.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *Handler) getNoteBySlug(c *gin.Context) {
	note, err := h.notes.GetNoteBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *Handler) deleteNote(c *gin.Context) {
	if err := h.notes.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}

	h.dropStats(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type checkInRequest struct {
	Date string `json:"date"`
}

func (h *Handler) checkIn(c *gin.Context) {
	date := time.Now()

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	id := c.Param("id")
	if err := h.progress.CheckIn(c.Request.Context(), id, date); err != nil {
		h.renderError(c, err)
		return
	}

	note, err := h.notes.GetNote(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *Handler) facets(c *gin.Context) {
	facets, err := h.notes.Facets(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, facets)
}

func (h *Handler) dashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	cached, err := h.statsCache.GetStats(ctx)
	if err != nil {
		logrus.Errorf("stats cache read failed: %v", err)
	}
	if cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	stats, err := h.stats.Dashboard(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}

	if err := h.statsCache.SetStats(ctx, stats); err != nil {
		logrus.Errorf("stats cache write failed: %v", err)
	}

	c.JSON(http.StatusOK, stats)
}

// dropStats invalidates the cached dashboard aggregate after a write.
func (h *Handler) dropStats(ctx context.Context) {
	if err := h.statsCache.InvalidateStats(ctx); err != nil {
		logrus.Errorf("stats cache invalidation failed: %v", err)
	}
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCheckInRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logrus.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func intQuery(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
