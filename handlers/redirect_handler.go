package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-url-shortener/services"
	"go.uber.org/zap"
)

// Redirect resolves a short code, counts the visit and answers 302 Found so
// that clients come back through the counter on every visit.
func (h *Handler) Redirect(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	shortCode := c.Param("short_code")

	target, err := h.urls.Redirect(ctx, shortCode)
	if err != nil {
		if errors.Is(err, services.ErrShortURLNotFound) {
			h.logger.Debug("Short URL not found", zap.String("shortCode", shortCode))
		}
		h.handleError(c, err, nil)
		return
	}

	h.logger.Info("Redirecting",
		zap.String("shortCode", shortCode),
		zap.String("ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()))
	c.Redirect(http.StatusFound, target)
}
