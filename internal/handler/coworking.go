package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/csxl/coworking-api/internal/model"
	"github.com/csxl/coworking-api/internal/service"
)

// CoworkingHandler serves the member-facing coworking endpoints: seat
// listing, availability search, reservation drafting and lifecycle
// changes, and the half-hour room grid. JWT authentication has already
// run; authorization happens in the service layer.
type CoworkingHandler struct {
	Reservations *service.ReservationService
	Seats        *service.SeatService
	Users        service.UserStore
}

// NewCoworkingHandler constructs a CoworkingHandler. All dependencies
// must be non-nil.
func NewCoworkingHandler(reservations *service.ReservationService, seats *service.SeatService, users service.UserStore) *CoworkingHandler {
	if reservations == nil || seats == nil || users == nil {
		panic("nil dependency passed to NewCoworkingHandler")
	}
	return &CoworkingHandler{Reservations: reservations, Seats: seats, Users: users}
}

// GetSeats handles GET /v1/coworking/seats. It returns the full seat
// map, reservable or not, so clients can render the floor plan.
func (h *CoworkingHandler) GetSeats(c echo.Context) error {
	seats, err := h.Seats.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

// GetSeatAvailability handles GET /v1/coworking/availability. Optional
// "start" and "end" query parameters bound the search (RFC 3339,
// defaulting to the next 24 hours); an optional comma-separated "seats"
// parameter restricts it to specific seat ids.
func (h *CoworkingHandler) GetSeatAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now().UTC()

	start, err := parseTimeQuery(c, "start", now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	end, err := parseTimeQuery(c, "end", start.Add(24*time.Hour))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	seats, err := h.Seats.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	if raw := c.QueryParam("seats"); raw != "" {
		wanted, err := parseIDList(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seats: expected comma-separated ids"})
		}
		filtered := seats[:0]
		for _, s := range seats {
			if wanted[s.ID] {
				filtered = append(filtered, s)
			}
		}
		seats = filtered
	}

	available, err := h.Reservations.SeatAvailability(ctx, seats, model.TimeRange{Start: start, End: end})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, available)
}

// DraftReservation handles POST /v1/coworking/reservation. A valid
// request yields a DRAFT reservation holding the assigned seats (or
// room) until the client confirms or the draft times out.
func (h *CoworkingHandler) DraftReservation(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}

	var req model.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.Reservations.DraftReservation(c.Request().Context(), sub, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// GetReservation handles GET /v1/coworking/reservation/:id.
func (h *CoworkingHandler) GetReservation(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	res, err := h.Reservations.GetReservation(c.Request().Context(), sub, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateReservation handles PUT /v1/coworking/reservation/:id. The body
// is a delta; today only state transitions are accepted, and the id in
// the path wins over any id in the body.
func (h *CoworkingHandler) UpdateReservation(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	var delta model.ReservationDelta
	if err := c.Bind(&delta); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	delta.ID = id
	if err := validate.Struct(delta); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.Reservations.ChangeReservation(c.Request().Context(), sub, delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListReservations handles GET /v1/coworking/reservations. It returns
// the subject's reservations inside their reservation window; an
// optional "state" query parameter filters to one state.
func (h *CoworkingHandler) ListReservations(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}

	var state *model.ReservationState
	if raw := c.QueryParam("state"); raw != "" {
		st := model.ReservationState(raw)
		switch st {
		case model.StateDraft, model.StateConfirmed, model.StateCheckedIn,
			model.StateCheckedOut, model.StateCancelled:
			state = &st
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid state filter"})
		}
	}

	out, err := h.Reservations.GetCurrentReservationsForUser(c.Request().Context(), sub, sub, state)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetRoomReservations handles GET /v1/coworking/room-reservations. The
// "date" query parameter (YYYY-MM-DD, defaulting to today) selects the
// day whose half-hour room grid is returned.
func (h *CoworkingHandler) GetRoomReservations(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}

	date := time.Now().UTC()
	if raw := c.QueryParam("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date: expected YYYY-MM-DD"})
		}
		date = d.UTC()
	}

	details, err := h.Reservations.GetMapReservedTimesByDate(c.Request().Context(), date, sub)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// parseIDList splits a comma-separated list of positive integer ids.
func parseIDList(raw string) (map[uint64]bool, error) {
	out := map[uint64]bool{}
	for _, part := range splitComma(raw) {
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		out[id] = true
	}
	return out, nil
}
