package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/bookings"
	"staybook/internal/domain/reservation"
)

type ReservationHandler struct {
	Service *bookings.Service
}

type reservationDTO struct {
	BookingID string `json:"booking_id"`
	DateIn    string `json:"date_in"`
	DateOut   string `json:"date_out"`
}

// List serves the reservation snapshot for a property. Any authenticated
// caller may read availability.
func (h ReservationHandler) List(c *gin.Context) {
	if _, ok := requireRole(c, ""); !ok {
		return
	}
	propertyID := c.Param("id")
	items, err := h.Service.Snapshot(c.Request.Context(), propertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load reservations"})
		return
	}
	c.JSON(http.StatusOK, mapReservations(items))
}

func mapReservations(items []reservation.Reservation) []reservationDTO {
	out := make([]reservationDTO, 0, len(items))
	for _, r := range items {
		out = append(out, reservationDTO{
			BookingID: r.ID,
			DateIn:    r.Range.CheckIn.String(),
			DateOut:   r.Range.CheckOut.String(),
		})
	}
	return out
}

var _ ReservationHTTP = ReservationHandler{}
