package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/bookings"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
)

type BookingHandler struct {
	Service *bookings.Service
}

type createBookingRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
	DateIn     string `json:"date_in" binding:"required"`
	DateOut    string `json:"date_out" binding:"required"`
}

type createBookingResponse struct {
	BookingID string `json:"booking_id"`
	DateIn    string `json:"date_in"`
	DateOut   string `json:"date_out"`
}

// Create accepts a booking request from a guest. The validator that runs
// here is the same one the client already ran; a 409 means the snapshot
// the client validated against was stale.
func (h BookingHandler) Create(c *gin.Context) {
	user, ok := requireRole(c, "guest")
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stay, err := parseStay(req.DateIn, req.DateOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Service.Create(c.Request.Context(), user.ID, req.PropertyID, stay)
	if err != nil {
		var rejection *bookings.RejectionError
		if errors.As(err, &rejection) {
			status := http.StatusBadRequest
			if rejection.Reason == booking.ReasonOverlap {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": rejection.Reason.Message(), "reason": string(rejection.Reason)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create booking"})
		return
	}
	c.JSON(http.StatusCreated, createBookingResponse{
		BookingID: res.ID,
		DateIn:    res.Range.CheckIn.String(),
		DateOut:   res.Range.CheckOut.String(),
	})
}

func parseStay(dateIn, dateOut string) (booking.StayRequest, error) {
	checkIn, err := calendar.Parse(dateIn)
	if err != nil {
		return booking.StayRequest{}, err
	}
	checkOut, err := calendar.Parse(dateOut)
	if err != nil {
		return booking.StayRequest{}, err
	}
	return booking.StayRequest{CheckIn: checkIn, CheckOut: checkOut}, nil
}

var _ BookingHTTP = BookingHandler{}
