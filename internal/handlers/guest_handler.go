package handlers

import (
	"net/http"

	"gatherly_backend/internal/middleware"
	"gatherly_backend/internal/models"
	"gatherly_backend/internal/services"
	"gatherly_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GuestHandler struct {
	*BaseHandler
	guestService services.GuestService
}

func NewGuestHandler(base *BaseHandler, guestService services.GuestService) *GuestHandler {
	return &GuestHandler{
		BaseHandler:  base,
		guestService: guestService,
	}
}

func (h *GuestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	guests := rg.Group("/events/:id/guests")
	guests.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleHost))
	{
		guests.POST("", h.Add)
		guests.GET("", h.List)
	}

	// Removal is addressed by guest id alone; the owning event is resolved
	// from the guest row.
	removal := rg.Group("/guests")
	removal.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleHost))
	{
		removal.DELETE("/:id", h.Remove)
	}
}

func (h *GuestHandler) Add(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddGuestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.guestService.AddGuest(db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *GuestHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	guests, err := h.guestService.ListGuests(db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"guests": guests})
}

func (h *GuestHandler) Remove(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.guestService.RemoveGuest(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Guest removed"})
}
