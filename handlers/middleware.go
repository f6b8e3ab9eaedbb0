package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go-url-shortener/auth"
	"go-url-shortener/types"
	"go.uber.org/zap"
)

const (
	identityKey = "identity"

	tokenNotProvided   = "Token not provided"
	invalidTokenFormat = "Invalid token format"
	invalidToken       = "Invalid or expired token"
)

// CORSMiddleware adds CORS headers to the response.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Server error", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Client error", fields...)
		default:
			logger.Info("Request completed", fields...)
		}
	}
}

// AuthGate rejects requests without a valid bearer token with 401 and
// stores the verified identity on the context otherwise.
func (h *Handler) AuthGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := h.authenticate(c)
		if err != nil {
			message := invalidToken
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				message = tokenNotProvided
			case errors.Is(err, auth.ErrMalformedToken):
				message = invalidTokenFormat
			}
			h.logger.Debug("Rejected request", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuthGate attaches the identity when a valid bearer token is
// present and lets every request through.
func (h *Handler) OptionalAuthGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := h.authenticate(c); err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

func (h *Handler) authenticate(c *gin.Context) (types.Identity, error) {
	token, err := auth.ParseBearer(c.GetHeader("Authorization"))
	if err != nil {
		return types.Identity{}, err
	}
	return h.verifier.Verify(token)
}

// optionalIdentity returns the identity set by a gate, or nil.
func optionalIdentity(c *gin.Context) *types.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := value.(types.Identity)
	if !ok {
		return nil
	}
	return &identity
}

// requireIdentity writes a 401 when no gate stored an identity.
func requireIdentity(c *gin.Context) (types.Identity, bool) {
	identity := optionalIdentity(c)
	if identity == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": tokenNotProvided})
		return types.Identity{}, false
	}
	return *identity, true
}
