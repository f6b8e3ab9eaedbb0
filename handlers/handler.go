// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go-url-shortener/config"
	"go-url-shortener/services"
	"go-url-shortener/types"
	"go.uber.org/zap"
)

const (
	invalidRequestBody   = "Invalid request body"
	invalidQuery         = "Invalid pagination parameters"
	invalidURLProvided   = "Invalid URL provided"
	invalidCredentials   = "Invalid email or password"
	emailInUse           = "Email already in use"
	shortURLNotFound     = "Short URL not found"
	generationExhausted  = "Could not generate a unique short code, please try again later"
	internalServerError  = "Internal server error"
	errorCreatingURL     = "Error creating short URL"
	errorRegisteringUser = "Error registering user"
)

// TokenVerifier resolves a raw bearer token to the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (types.Identity, error)
}

// HandlerInterface defines the methods that the HTTP handler should implement.
type HandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Shorten(c *gin.Context)
	Redirect(c *gin.Context)
	ListURLs(c *gin.Context)
	GetURL(c *gin.Context)
	UpdateURL(c *gin.Context)
	DeleteURL(c *gin.Context)
	HealthCheck(c *gin.Context)
	AuthGate() gin.HandlerFunc
	OptionalAuthGate() gin.HandlerFunc
}

// Handler holds the dependencies for serving the HTTP API.
type Handler struct {
	urls     services.URLService
	userURLs services.UserURLService
	accounts services.AuthService
	verifier TokenVerifier
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger
}

// NewHandler creates and returns a new Handler instance.
//
// Parameters:
//   - ctx: A context.Context for cancellation during initialization.
//   - urls: shortening and redirect operations.
//   - userURLs: owner-scoped link management.
//   - accounts: registration and login.
//   - verifier: bearer token verification used by the auth gates.
//   - cfg: application settings; RequestTimeout bounds every request.
//   - logger: structured logger.
func NewHandler(
	ctx context.Context,
	urls services.URLService,
	userURLs services.UserURLService,
	accounts services.AuthService,
	verifier TokenVerifier,
	cfg *config.Config,
	logger *zap.Logger,
) (HandlerInterface, error) {
	switch {
	case urls == nil:
		return nil, errors.New("url service cannot be nil")
	case userURLs == nil:
		return nil, errors.New("user url service cannot be nil")
	case accounts == nil:
		return nil, errors.New("auth service cannot be nil")
	case verifier == nil:
		return nil, errors.New("token verifier cannot be nil")
	case cfg == nil:
		return nil, errors.New("config cannot be nil")
	case logger == nil:
		return nil, errors.New("logger cannot be nil")
	}

	handler := &Handler{
		urls:     urls,
		userURLs: userURLs,
		accounts: accounts,
		verifier: verifier,
		validate: validator.New(),
		config:   cfg,
		logger:   logger,
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// requestContext bounds a request by the configured timeout.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
}

// handleError maps service errors to status codes. customMessages overrides
// the response text per error; Internal errors are logged and never echoed.
func (h *Handler) handleError(c *gin.Context, err error, customMessages map[error]string) {
	var (
		statusCode int
		target     error
		fallback   string
	)

	switch {
	case errors.Is(err, services.ErrValidation):
		statusCode, target, fallback = http.StatusBadRequest, services.ErrValidation, invalidRequestBody
	case errors.Is(err, services.ErrEmailInUse):
		statusCode, target, fallback = http.StatusBadRequest, services.ErrEmailInUse, emailInUse
	case errors.Is(err, services.ErrUnauthorized):
		statusCode, target, fallback = http.StatusUnauthorized, services.ErrUnauthorized, invalidCredentials
	case errors.Is(err, services.ErrShortURLNotFound):
		statusCode, target, fallback = http.StatusNotFound, services.ErrShortURLNotFound, shortURLNotFound
	case errors.Is(err, services.ErrGenerationExhausted):
		statusCode, target, fallback = http.StatusBadRequest, services.ErrGenerationExhausted, generationExhausted
	default:
		h.logger.Error("Unexpected error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()))
		statusCode, target, fallback = http.StatusInternalServerError, services.ErrInternal, internalServerError
	}

	message := customMessages[target]
	if message == "" {
		message = fallback
	}
	c.JSON(statusCode, gin.H{"error": message})
}

// bindJSON decodes and validates the request body, writing a 400 on failure.
func (h *Handler) bindJSON(c *gin.Context, input interface{}, invalidMessage string) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		h.logger.Debug("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		h.logger.Debug("Invalid input", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidMessage})
		return false
	}
	return true
}
