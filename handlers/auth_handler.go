package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go-url-shortener/services"
	"go-url-shortener/types"
)

const invalidCredentialsFormat = "A valid email and a password of 6 to 72 characters are required"

// Register creates an account and responds 201 with the public user view.
func (h *Handler) Register(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var input types.Credentials
	if !h.bindJSON(c, &input, invalidCredentialsFormat) {
		return
	}

	user, err := h.accounts.Register(ctx, input.Email, input.Password)
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrInternal: errorRegisteringUser,
		})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var input types.Credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}
	// malformed credentials can never match, so they get the same answer as wrong ones
	if err := h.validate.Struct(input); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	resp, err := h.accounts.Login(ctx, input.Email, input.Password)
	if err != nil {
		h.handleError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
