package handlers

import (
	"net/http"

	"gatherly_backend/internal/logger"
	"gatherly_backend/internal/middleware"
	"gatherly_backend/internal/services"
	"gatherly_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService  services.AuthService
	loginLimiter *middleware.RateLimiter
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, loginLimiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.loginLimiter.Middleware(middleware.ByClientIP), h.Login)
		auth.POST("/forgot-password", h.loginLimiter.Middleware(middleware.ByClientIP), h.ForgotPassword)
		auth.POST("/verify-reset-token", h.VerifyResetToken)
		auth.POST("/reset-password", h.ResetPassword)
	}

	me := rg.Group("/auth")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/me", h.CurrentUser)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.CurrentUser(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ForgotPassword always answers 200 with the same message. A failed lookup
// or a mail error is logged server-side only, so responses do not reveal
// which emails have accounts.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.RequestPasswordReset(db, req.Email); err != nil {
		logger.CtxWithError(c.Request.Context(), "password reset request failed", err, "path", c.Request.URL.Path)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists for that email, a reset link has been sent.",
	})
}

func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	var req dto.VerifyResetTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.VerifyResetToken(db, req.Token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ResetPassword(db, req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
