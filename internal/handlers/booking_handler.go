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

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
	invalidator    *cache.Invalidator
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService, invalidator *cache.Invalidator) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
		invalidator:    invalidator,
	}
}

func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListMine)
	}

	providers := rg.Group("/provider/bookings")
	providers.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleProvider))
	{
		providers.GET("", h.ListForProvider)
		providers.PUT("/:id", h.UpdateStatus)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	booking, err := h.bookingService.CreateBooking(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Bookings feed the derived counts in the provider listing.
	h.invalidator.PurgeProviderLists(c.Request.Context())
	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	booking, err := h.bookingService.UpdateBookingStatus(db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.invalidator.PurgeProviderLists(c.Request.Context())
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListForProvider(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ListBookingsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	bookings, err := h.bookingService.ListProviderBookings(db, userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	bookings, err := h.bookingService.ListMyBookings(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
