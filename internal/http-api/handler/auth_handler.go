package handler

import (
	"net/http"

	"yamdb/internal/http-api/dto"
	"yamdb/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the sign-up and token routes. extra runs before
// each handler (rate limiting).
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, extra ...gin.HandlerFunc) {
	auth := router.Group("/auth", extra...)
	{
		auth.POST("/email", h.SignUp)
		auth.POST("/token", h.Token)
	}
}

// SignUp godoc
// @Summary      Request a confirmation code
// @Description  Creates an inactive account for the email if none exists and mails a confirmation code.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SignupRequest true "Email"
// @Success      200
// @Failure      400  {object}  map[string][]string
// @Failure      429  {object}  map[string]string
// @Router       /auth/email [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.SignUp(ctx, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Token godoc
// @Summary      Exchange a confirmation code for an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.TokenRequest true "Email and confirmation code"
// @Success      200  {object}  dto.TokenResponse
// @Failure      400  {object}  map[string][]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	accessToken, err := h.authService.IssueToken(ctx, req.Email, req.ConfirmationCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{Token: accessToken})
}
