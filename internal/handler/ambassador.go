package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csxl/coworking-api/internal/service"
)

// AmbassadorHandler serves the front-desk endpoints ambassadors use to
// watch active reservations and check members in. Route-level role
// checks keep members out; the service layer enforces the actual
// permissions on top.
type AmbassadorHandler struct {
	Reservations *service.ReservationService
	Users        service.UserStore
}

// NewAmbassadorHandler constructs an AmbassadorHandler.
func NewAmbassadorHandler(reservations *service.ReservationService, users service.UserStore) *AmbassadorHandler {
	if reservations == nil || users == nil {
		panic("nil dependency passed to NewAmbassadorHandler")
	}
	return &AmbassadorHandler{Reservations: reservations, Users: users}
}

// GetXLReservations handles GET /v1/coworking/ambassador/xl: every
// active and upcoming seat reservation, for the check-in desk view.
func (h *AmbassadorHandler) GetXLReservations(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}
	out, err := h.Reservations.ListAllActiveAndUpcomingForXL(c.Request().Context(), sub)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetRoomReservations handles GET /v1/coworking/ambassador/rooms: every
// active and upcoming room reservation.
func (h *AmbassadorHandler) GetRoomReservations(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}
	out, err := h.Reservations.ListAllActiveAndUpcomingForRooms(c.Request().Context(), sub)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// checkinRequest names the reservation an ambassador is checking in.
type checkinRequest struct {
	ReservationID uint64 `json:"reservation_id" validate:"required,gt=0"`
}

// Checkin handles PUT /v1/coworking/ambassador/checkin. Checking in an
// already checked-in reservation succeeds without change.
func (h *AmbassadorHandler) Checkin(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}

	var req checkinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.Reservations.StaffCheckinReservation(c.Request().Context(), sub, req.ReservationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
