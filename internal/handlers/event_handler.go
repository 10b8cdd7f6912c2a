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

type EventHandler struct {
	*BaseHandler
	eventService services.EventService
	invalidator  *cache.Invalidator
	cacheMW      gin.HandlerFunc
}

func NewEventHandler(base *BaseHandler, eventService services.EventService, invalidator *cache.Invalidator, cacheMW gin.HandlerFunc) *EventHandler {
	return &EventHandler{
		BaseHandler:  base,
		eventService: eventService,
		invalidator:  invalidator,
		cacheMW:      cacheMW,
	}
}

func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// The public listing carries no authentication, so the cache sits
	// directly on the route.
	rg.GET("/events/public", h.cacheMW, h.ListPublic)

	events := rg.Group("/events")
	events.Use(middleware.AuthMiddleware())
	{
		events.GET("/mine", h.ListMine)
		events.GET("/:id", h.Get)
		events.PUT("/:id", h.Update)
		events.DELETE("/:id", h.Delete)
		events.POST("/:id/join", h.Join)
		events.DELETE("/:id/join", h.Leave)
	}

	hosts := rg.Group("/events")
	hosts.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleHost))
	{
		hosts.POST("", h.Create)
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	event, err := h.eventService.CreateEvent(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.invalidator.PurgeEventLists(c.Request.Context())
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	event, err := h.eventService.UpdateEvent(db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.invalidator.PurgeEventLists(c.Request.Context())
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	event, err := h.eventService.GetEvent(db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.eventService.DeleteEvent(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.invalidator.PurgeEventLists(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

func (h *EventHandler) ListPublic(c *gin.Context) {
	var query dto.ListPublicEventsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	events, err := h.eventService.ListPublicEvents(db, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	events, err := h.eventService.ListMyEvents(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) Join(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.eventService.JoinEvent(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.invalidator.PurgeEventLists(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Joined event"})
}

func (h *EventHandler) Leave(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.eventService.LeaveEvent(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.invalidator.PurgeEventLists(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Left event"})
}
