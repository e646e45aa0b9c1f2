package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wiissal/take-a-chef/internal/dto"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/httpresp"
	ucBooking "github.com/wiissal/take-a-chef/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
	listUC   *ucBooking.ListBookings
	getUC    *ucBooking.GetBooking
	updateUC *ucBooking.UpdateBookingStatus
	cancelUC *ucBooking.CancelBooking
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	listUC *ucBooking.ListBookings,
	getUC *ucBooking.GetBooking,
	updateUC *ucBooking.UpdateBookingStatus,
	cancelUC *ucBooking.CancelBooking,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		updateUC: updateUC,
		cancelUC: cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ChefID     uint     `json:"chefId" binding:"required,min=1"`
	Date       string   `json:"date" binding:"required"`
	Time       string   `json:"time" binding:"required"`
	GuestCount int      `json:"guestCount"`
	TotalPrice *float64 `json:"totalPrice"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Identity:   id,
		ChefID:     req.ChefID,
		Date:       req.Date,
		Time:       req.Time,
		GuestCount: req.GuestCount,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Booking created successfully", gin.H{"booking": dto.NewBooking(b)})
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	res, err := h.listUC.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		Identity: id,
		Status:   c.Query("status"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, "", dto.NewBookingList(res.Items, res.Page, res.Limit, res.Total))
}

// ======================================================
// GET
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.getUC.Execute(c.Request.Context(), id, bookingID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, "", gin.H{"booking": dto.NewBooking(b)})
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.updateUC.Execute(c.Request.Context(), ucBooking.UpdateBookingStatusInput{
		Identity:  id,
		BookingID: bookingID,
		Status:    req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, "Booking "+b.Status+" successfully", gin.H{"booking": dto.NewBooking(b)})
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), id, bookingID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, "Booking cancelled successfully", gin.H{"booking": dto.NewBooking(b)})
}
