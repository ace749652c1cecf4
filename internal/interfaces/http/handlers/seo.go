// internal/interfaces/http/handlers/seo.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/seo"
	"gorm.io/gorm"
)

// SeoHandler handles SEO metadata endpoints
type SeoHandler struct {
	seoService *seo.Service
	config     *config.Config
}

// NewSeoHandler creates a new SEO handler
func NewSeoHandler(db *gorm.DB, cfg *config.Config) *SeoHandler {
	return &SeoHandler{
		seoService: seo.NewService(db, cfg),
		config:     cfg,
	}
}

// GetProductSeoBySlug handles GET /seo/products/:slug
func (h *SeoHandler) GetProductSeoBySlug(c *gin.Context) {
	record, err := h.seoService.GetProductSeoBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, seo.ErrSeoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "SEO record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve SEO record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "SEO record retrieved successfully",
		"data":    record,
	})
}

// GetCategorySeoBySlug handles GET /seo/categories/:slug
func (h *SeoHandler) GetCategorySeoBySlug(c *gin.Context) {
	record, err := h.seoService.GetCategorySeoBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, seo.ErrSeoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "SEO record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve SEO record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "SEO record retrieved successfully",
		"data":    record,
	})
}

// UpsertProductSeo handles PUT /seller/products/:id/seo
func (h *SeoHandler) UpsertProductSeo(c *gin.Context) {
	var req seo.UpsertSeoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	record, err := h.seoService.UpsertProductSeo(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product SEO saved successfully",
		"data":    record,
	})
}

// UpsertCategorySeo handles PUT /admin/categories/:id/seo
func (h *SeoHandler) UpsertCategorySeo(c *gin.Context) {
	var req seo.UpsertSeoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	record, err := h.seoService.UpsertCategorySeo(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category SEO saved successfully",
		"data":    record,
	})
}

// DeleteProductSeo handles DELETE /seller/products/:id/seo
func (h *SeoHandler) DeleteProductSeo(c *gin.Context) {
	if err := h.seoService.DeleteProductSeo(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, seo.ErrSeoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "SEO record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product SEO deleted successfully",
	})
}

// DeleteCategorySeo handles DELETE /admin/categories/:id/seo
func (h *SeoHandler) DeleteCategorySeo(c *gin.Context) {
	if err := h.seoService.DeleteCategorySeo(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, seo.ErrSeoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "SEO record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category SEO deleted successfully",
	})
}
