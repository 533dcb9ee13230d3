package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PWalkow/ElasticsearchBundle/internal/domain"
	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
	"github.com/PWalkow/ElasticsearchBundle/internal/manager"
	"github.com/PWalkow/ElasticsearchBundle/internal/service"
)

const defaultOperationsLimit = 50

// Handler handles HTTP requests for the bundle API
type Handler struct {
	indexService *service.IndexService
	logger       logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(indexService *service.IndexService, log logger.Logger) *Handler {
	return &Handler{
		indexService: indexService,
		logger:       log,
	}
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var forbidden *manager.ForbiddenError
	var invalidOp *manager.InvalidOperationError

	switch {
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &invalidOp):
		return http.StatusBadRequest
	case errors.Is(err, manager.ErrIndexNotFound):
		return http.StatusNotFound
	case strings.HasPrefix(err.Error(), "unknown manager:"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error, msg string, fields ...logger.Field) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, append(fields, logger.Error(err))...)
	} else {
		h.logger.Warn(msg, append(fields, logger.Error(err))...)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// ListManagers handles GET /api/v1/managers
func (h *Handler) ListManagers(c *gin.Context) {
	names := h.indexService.ManagerNames()
	c.JSON(http.StatusOK, gin.H{
		"managers": names,
		"count":    len(names),
	})
}

// GetStatus handles GET /api/v1/managers/:manager/index
func (h *Handler) GetStatus(c *gin.Context) {
	name := c.Param("manager")

	status, err := h.indexService.Status(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err, "Failed to get manager status", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, status)
}

// CreateIndex handles POST /api/v1/managers/:manager/index
func (h *Handler) CreateIndex(c *gin.Context) {
	name := c.Param("manager")

	var req domain.CreateIndexRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.indexService.CreateIndex(c.Request.Context(), name, req.StripMappings); err != nil {
		h.fail(c, err, "Failed to create index", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}

// DropIndex handles DELETE /api/v1/managers/:manager/index
func (h *Handler) DropIndex(c *gin.Context) {
	name := c.Param("manager")

	if err := h.indexService.DropIndex(c.Request.Context(), name); err != nil {
		h.fail(c, err, "Failed to drop index", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "dropped"})
}

// RecreateIndex handles POST /api/v1/managers/:manager/index/recreate
func (h *Handler) RecreateIndex(c *gin.Context) {
	name := c.Param("manager")

	var req domain.CreateIndexRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.indexService.RecreateIndex(c.Request.Context(), name, req.StripMappings); err != nil {
		h.fail(c, err, "Failed to recreate index", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recreated"})
}

// RefreshIndex handles POST /api/v1/managers/:manager/index/refresh
func (h *Handler) RefreshIndex(c *gin.Context) {
	name := c.Param("manager")

	if err := h.indexService.RefreshIndex(c.Request.Context(), name); err != nil {
		h.fail(c, err, "Failed to refresh index", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// FlushIndex handles POST /api/v1/managers/:manager/index/flush
func (h *Handler) FlushIndex(c *gin.Context) {
	name := c.Param("manager")

	if err := h.indexService.FlushIndex(c.Request.Context(), name); err != nil {
		h.fail(c, err, "Failed to flush index", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "flushed"})
}

// ClearCache handles POST /api/v1/managers/:manager/index/clear-cache
func (h *Handler) ClearCache(c *gin.Context) {
	name := c.Param("manager")

	if err := h.indexService.ClearCache(c.Request.Context(), name); err != nil {
		h.fail(c, err, "Failed to clear index cache", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}

// SyncMappings handles POST /api/v1/managers/:manager/mappings/sync
func (h *Handler) SyncMappings(c *gin.Context) {
	name := c.Param("manager")

	var req domain.SyncMappingsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	status, err := h.indexService.SyncMappings(c.Request.Context(), name, req.Types)
	if err != nil {
		h.fail(c, err, "Failed to sync mappings", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, domain.SyncMappingsResponse{
		Result:  int(status),
		Outcome: mappingOutcome(status),
	})
}

func mappingOutcome(status manager.MappingStatus) string {
	switch status {
	case manager.MappingUpdated:
		return "updated"
	case manager.MappingUpToDate:
		return "up_to_date"
	default:
		return "no_data"
	}
}

// EnqueueBulk handles POST /api/v1/managers/:manager/bulk
func (h *Handler) EnqueueBulk(c *gin.Context) {
	name := c.Param("manager")

	var req domain.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.indexService.EnqueueBulk(c.Request.Context(), name, req.Operations); err != nil {
		h.fail(c, err, "Failed to enqueue bulk operations", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"enqueued": len(req.Operations)})
}

// SetBulkParams handles PUT /api/v1/managers/:manager/bulk/params
func (h *Handler) SetBulkParams(c *gin.Context) {
	name := c.Param("manager")

	var req domain.BulkParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := manager.BulkParams{
		Consistency: req.Consistency,
		Refresh:     req.Refresh,
		Replication: req.Replication,
	}
	if err := h.indexService.SetBulkParams(name, params); err != nil {
		h.fail(c, err, "Failed to set bulk params", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "params set"})
}

// Commit handles POST /api/v1/managers/:manager/bulk/commit
func (h *Handler) Commit(c *gin.Context) {
	name := c.Param("manager")

	response, err := h.indexService.Commit(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err, "Failed to commit bulk batch", logger.String("manager", name))
		return
	}

	if response == nil {
		c.JSON(http.StatusOK, gin.H{"status": "nothing to commit"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// PersistDocument handles POST /api/v1/managers/:manager/documents/:type
func (h *Handler) PersistDocument(c *gin.Context) {
	name := c.Param("manager")
	typeName := c.Param("type")

	var document map[string]any
	if err := c.ShouldBindJSON(&document); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.indexService.Persist(name, typeName, document); err != nil {
		h.fail(c, err, "Failed to persist document",
			logger.String("manager", name),
			logger.String("type", typeName),
		)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "enqueued"})
}

// SetReadOnly handles PUT /api/v1/managers/:manager/read-only
func (h *Handler) SetReadOnly(c *gin.Context) {
	name := c.Param("manager")

	var req domain.ReadOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.indexService.SetReadOnly(name, *req.ReadOnly); err != nil {
		h.fail(c, err, "Failed to set read-only state", logger.String("manager", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{"read_only": *req.ReadOnly})
}

// ListOperations handles GET /api/v1/operations
func (h *Handler) ListOperations(c *gin.Context) {
	limit := defaultOperationsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	operations, err := h.indexService.RecentOperations(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err, "Failed to list operations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operations": operations,
		"count":      len(operations),
	})
}
