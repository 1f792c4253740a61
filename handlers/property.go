package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	propertyRepo "spacebook/database/repository/property"
	"spacebook/middleware"
	"spacebook/models"
	"spacebook/utils"
)

const propertyCacheTTL = 10 * time.Minute

// PropertyHandler exposes the thin catalog surface of the property
// record store. Detail reads go through the redis cache; the booking
// engine reads the store directly and never uses this cache.
type PropertyHandler struct {
	Repo   propertyRepo.PropertyRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

// NewPropertyHandler creates a PropertyHandler.
func NewPropertyHandler(repo propertyRepo.PropertyRepository, cache *redis.Client, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{Repo: repo, Cache: cache, Logger: logger}
}

// CreateProperty handles POST /api/properties.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var input struct {
		Title        string  `json:"title" binding:"required"`
		Description  string  `json:"description"`
		Address      string  `json:"address" binding:"required"`
		MonthlyPrice float64 `json:"monthly_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.MonthlyPrice <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "monthly price must be positive", "")
		return
	}

	property := &models.Property{
		ID:           uuid.New().String(),
		OwnerID:      userID,
		Title:        input.Title,
		Description:  input.Description,
		Address:      input.Address,
		MonthlyPrice: input.MonthlyPrice,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Repo.Insert(c.Request.Context(), property); err != nil {
		h.Logger.Error("failed to create property", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "property storage is unavailable", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

// GetProperty handles GET /api/properties/:id.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if cached := h.cachedProperty(ctx, id); cached != nil {
		c.JSON(http.StatusOK, gin.H{"property": cached})
		return
	}

	property, err := h.Repo.GetByID(ctx, id)
	if errors.Is(err, propertyRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "property not found", "")
		return
	}
	if err != nil {
		h.Logger.Error("failed to fetch property", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "property storage is unavailable", "")
		return
	}

	h.cacheProperty(ctx, property)
	c.JSON(http.StatusOK, gin.H{"property": property})
}

// ListProperties handles GET /api/properties.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	properties, err := h.Repo.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list properties", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "property storage is unavailable", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// MyProperties handles GET /api/properties/mine.
func (h *PropertyHandler) MyProperties(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	properties, err := h.Repo.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list owner properties", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "property storage is unavailable", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// DeleteProperty handles DELETE /api/properties/:id. Only the owner may
// delete; booking history on the property is retained.
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	property, err := h.Repo.GetByID(ctx, id)
	if errors.Is(err, propertyRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "property not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "property storage is unavailable", "")
		return
	}
	if property.OwnerID != userID {
		utils.JSONError(c, http.StatusForbidden, "only the owner can delete this property", "")
		return
	}

	if err := h.Repo.Delete(ctx, id); err != nil && !errors.Is(err, propertyRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusServiceUnavailable, "property storage is unavailable", "")
		return
	}
	h.dropCachedProperty(ctx, id)

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *PropertyHandler) cachedProperty(ctx context.Context, id string) *models.Property {
	if h.Cache == nil {
		return nil
	}
	data, err := h.Cache.Get(ctx, propertyCacheKey(id)).Result()
	if err != nil {
		return nil
	}
	var property models.Property
	if err := json.Unmarshal([]byte(data), &property); err != nil {
		return nil
	}
	return &property
}

func (h *PropertyHandler) cacheProperty(ctx context.Context, property *models.Property) {
	if h.Cache == nil {
		return
	}
	data, err := json.Marshal(property)
	if err != nil {
		return
	}
	if err := h.Cache.Set(ctx, propertyCacheKey(property.ID), data, propertyCacheTTL).Err(); err != nil {
		h.Logger.Warn("failed to cache property", zap.String("id", property.ID), zap.Error(err))
	}
}

func (h *PropertyHandler) dropCachedProperty(ctx context.Context, id string) {
	if h.Cache == nil {
		return
	}
	h.Cache.Del(ctx, propertyCacheKey(id))
}

func propertyCacheKey(id string) string {
	return "property:" + id
}
