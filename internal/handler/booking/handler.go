package booking

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glowbook/booking-api/internal/middleware"
	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/service/bookingflow"
	"github.com/glowbook/booking-api/pkg/errors"
	"github.com/glowbook/booking-api/pkg/httputil"
)

type Handler struct {
	flow *bookingflow.Service
}

func NewHandler(flow *bookingflow.Service) *Handler {
	return &Handler{flow: flow}
}

func (h *Handler) StartDraft(c *gin.Context) {
	var req model.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	view, err := h.flow.StartDraft(c.Request.Context(), middleware.CustomerID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, view)
}

func (h *Handler) GetDraft(c *gin.Context) {
	view, err := h.flow.GetDraft(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) SelectService(c *gin.Context) {
	var req model.SelectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	view, err := h.flow.SelectService(c.Request.Context(), middleware.CustomerID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) SetSchedule(c *gin.Context) {
	var req model.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	view, err := h.flow.SetSchedule(c.Request.Context(), middleware.CustomerID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) SelectStaff(c *gin.Context) {
	var req model.SelectStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	view, err := h.flow.SelectStaff(c.Request.Context(), middleware.CustomerID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) SetDetails(c *gin.Context) {
	var req model.DraftDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest(err.Error(), err))
		return
	}

	view, err := h.flow.SetDetails(c.Request.Context(), middleware.CustomerID(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) GoBack(c *gin.Context) {
	view, err := h.flow.GoBack(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) Submit(c *gin.Context) {
	booking, err := h.flow.Submit(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, booking)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid booking ID", err))
		return
	}

	booking, err := h.flow.GetBooking(c.Request.Context(), middleware.CustomerID(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, booking)
}

func (h *Handler) ListBookings(c *gin.Context) {
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid pagination", err))
		return
	}

	bookings, total, err := h.flow.ListBookings(c.Request.Context(), middleware.CustomerID(c), p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	page, size := p.Clamp()
	httputil.RespondWithPagination(c, bookings, page, size, total)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("/draft", h.StartDraft)
		bookings.GET("/draft", h.GetDraft)
		bookings.PUT("/draft/service", h.SelectService)
		bookings.PUT("/draft/schedule", h.SetSchedule)
		bookings.PUT("/draft/staff", h.SelectStaff)
		bookings.PUT("/draft/details", h.SetDetails)
		bookings.POST("/draft/back", h.GoBack)
		bookings.POST("", h.Submit)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
	}
}
