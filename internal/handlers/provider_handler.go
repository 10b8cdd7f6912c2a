package handlers

import (
	"net/http"

	"gatherly_backend/internal/cache"
	"gatherly_backend/internal/middleware"
	"gatherly_backend/internal/models"
	"gatherly_backend/internal/services"
	"gatherly_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	*BaseHandler
	providerService services.ProviderService
	invalidator     *cache.Invalidator
	cacheMW         gin.HandlerFunc
}

func NewProviderHandler(base *BaseHandler, providerService services.ProviderService, invalidator *cache.Invalidator, cacheMW gin.HandlerFunc) *ProviderHandler {
	return &ProviderHandler{
		BaseHandler:     base,
		providerService: providerService,
		invalidator:     invalidator,
		cacheMW:         cacheMW,
	}
}

func (h *ProviderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	providers := rg.Group("/providers")
	providers.Use(middleware.AuthMiddleware())
	{
		providers.GET("", h.cacheMW, h.List)
		providers.GET("/:id", h.Get)
	}

	profile := rg.Group("/provider/profile")
	profile.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleProvider))
	{
		profile.GET("", h.GetMyProfile)
		profile.PUT("", h.UpdateMyProfile)
	}
}

func (h *ProviderHandler) List(c *gin.Context) {
	db := h.GetDB(c)

	items, err := h.providerService.ListProviders(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": items})
}

func (h *ProviderHandler) Get(c *gin.Context) {
	db := h.GetDB(c)

	provider, err := h.providerService.GetProvider(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	provider, err := h.providerService.GetMyProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProviderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	provider, err := h.providerService.UpdateMyProfile(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.invalidator.PurgeProviderLists(c.Request.Context())
	c.JSON(http.StatusOK, provider)
}
