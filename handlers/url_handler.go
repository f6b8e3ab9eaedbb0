package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go-url-shortener/services"
	"go-url-shortener/types"
	"go.uber.org/zap"
)

const invalidShortCode = "shortCode must be 6 alphanumeric characters"

// Shorten creates a short URL for the submitted target. A verified bearer
// token makes the caller the owner; anonymous requests are accepted.
func (h *Handler) Shorten(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var input types.ShortenRequest
	if !h.bindJSON(c, &input, invalidURLProvided) {
		return
	}

	resp, err := h.urls.Shorten(ctx, input.TargetURL, optionalIdentity(c))
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrInternal: errorCreatingURL,
		})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListURLs returns a page of the caller's links, newest first.
func (h *Handler) ListURLs(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var query types.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidQuery})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidQuery})
		return
	}

	page, err := h.userURLs.ListURLs(ctx, identity.ID, query.Page, query.Limit)
	if err != nil {
		h.handleError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetURL returns one of the caller's links.
func (h *Handler) GetURL(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	view, err := h.userURLs.GetURL(ctx, identity.ID, c.Param("short_code"))
	if err != nil {
		h.handleError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateURL points one of the caller's short codes at a new target.
func (h *Handler) UpdateURL(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var input types.UpdateURLRequest
	if !h.bindJSON(c, &input, invalidURLProvided) {
		return
	}

	view, err := h.userURLs.UpdateURL(ctx, identity.ID, input.ShortCode, input.NewURL)
	if err != nil {
		h.handleError(c, err, nil)
		return
	}
	h.logger.Info("Short URL updated", zap.String("shortCode", input.ShortCode))
	c.JSON(http.StatusOK, view)
}

// DeleteURL soft deletes one of the caller's links.
func (h *Handler) DeleteURL(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var input types.DeleteURLRequest
	if !h.bindJSON(c, &input, invalidShortCode) {
		return
	}

	view, err := h.userURLs.DeleteURL(ctx, identity.ID, input.ShortCode)
	if err != nil {
		h.handleError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HealthCheck returns a 200 OK status to indicate that the service is up.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
