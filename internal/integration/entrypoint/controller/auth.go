package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledger-backoffice/backend/internal/application/usecase/auth"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/dto"
)

// AuthController handles operator authentication endpoints.
type AuthController struct {
	loginUseCase *auth.LoginOperatorUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(loginUseCase *auth.LoginOperatorUseCase) *AuthController {
	return &AuthController{
		loginUseCase: loginUseCase,
	}
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginOperatorInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   output.ExpiresAt.UTC(),
		Username:    output.Username,
	})
}
