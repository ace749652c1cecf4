// internal/interfaces/http/handlers/contact.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

// ContactHandler handles the public contact form
type ContactHandler struct {
	emailService *email.EmailService
	config       *config.Config
}

// NewContactHandler creates a new contact handler
func NewContactHandler(cfg *config.Config) *ContactHandler {
	return &ContactHandler{
		emailService: email.NewEmailService(cfg),
		config:       cfg,
	}
}

// SubmitContact handles POST /contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Message string `json:"message" binding:"required,max=5000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.emailService.SendContactMessage(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send message",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent successfully",
	})
}
