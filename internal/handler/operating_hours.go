package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/csxl/coworking-api/internal/model"
	"github.com/csxl/coworking-api/internal/service"
)

// OperatingHoursHandler serves the facility schedule: anyone
// authenticated may read it, administrators maintain it.
type OperatingHoursHandler struct {
	Hours *service.OperatingHoursService
	Users service.UserStore
}

// NewOperatingHoursHandler constructs an OperatingHoursHandler.
func NewOperatingHoursHandler(hours *service.OperatingHoursService, users service.UserStore) *OperatingHoursHandler {
	if hours == nil || users == nil {
		panic("nil dependency passed to NewOperatingHoursHandler")
	}
	return &OperatingHoursHandler{Hours: hours, Users: users}
}

// GetSchedule handles GET /v1/coworking/operating-hours. Optional
// "start" and "end" parameters bound the window, defaulting to the
// coming week.
func (h *OperatingHoursHandler) GetSchedule(c echo.Context) error {
	now := time.Now().UTC()
	start, err := parseTimeQuery(c, "start", now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	end, err := parseTimeQuery(c, "end", start.Add(7*24*time.Hour))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	hours, err := h.Hours.Schedule(c.Request().Context(), model.TimeRange{Start: start, End: end})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, hours)
}

// operatingHoursRequest is the payload for creating an open interval.
type operatingHoursRequest struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtfield=Start"`
}

// Create handles POST /v1/coworking/operating-hours. Intervals that
// overlap an existing record are rejected with 409.
func (h *OperatingHoursHandler) Create(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}

	var req operatingHoursRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	created, err := h.Hours.Create(c.Request().Context(), sub, model.TimeRange{Start: req.Start.UTC(), End: req.End.UTC()})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Delete handles DELETE /v1/coworking/operating-hours/:id.
func (h *OperatingHoursHandler) Delete(c echo.Context) error {
	sub, err := subject(c, h.Users)
	if sub == nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid operating hours id"})
	}

	if err := h.Hours.Delete(c.Request().Context(), sub, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
