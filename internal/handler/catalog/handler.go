package catalog

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/service/catalog"
	"github.com/glowbook/booking-api/pkg/errors"
	"github.com/glowbook/booking-api/pkg/httputil"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListServices(c *gin.Context) {
	filters := &model.ServiceFilters{
		Category: c.Query("category"),
	}
	if id := c.Query("salon_id"); id != "" {
		salonID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithError(c, errors.NewBadRequest("invalid salon ID", err))
			return
		}
		filters.SalonID = salonID
	}

	services, err := h.service.ListServices(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid service ID", err))
		return
	}

	service, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, service)
}

// EligibleStaff lists the staff able to perform a service, in display order.
func (h *Handler) EligibleStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid service ID", err))
		return
	}

	staff, err := h.service.EligibleStaff(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, staff)
}

// AvailableSlots lists the open start times for a staff member and date.
func (h *Handler) AvailableSlots(c *gin.Context) {
	staffID, err := uuid.Parse(c.Query("staff_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid staff ID", err))
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid service ID", err))
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid date format", err))
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), staffID, serviceID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.GET("/:id/staff", h.EligibleStaff)
	}
	r.GET("/availability", h.AvailableSlots)
}
