package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/csxl/coworking-api/internal/model"
	"github.com/csxl/coworking-api/internal/repository"
	"github.com/csxl/coworking-api/internal/service"
)

// validate checks request payloads against their struct tags. A single
// instance caches parsed tags and is safe for concurrent use.
var validate = validator.New()

// getUserID extracts the authenticated user's id from the context. The
// JWT middleware stores the raw "sub" claim, which decodes as a string
// or a JSON number depending on the issuer.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case string:
		return strconv.ParseUint(v, 10, 64)
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("negative user id")
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative user id")
		}
		return uint64(v), nil
	}
	return 0, fmt.Errorf("missing user id claim")
}

// parseTimeQuery reads an RFC 3339 timestamp from the named query
// parameter, returning the fallback when absent.
func parseTimeQuery(c echo.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: expected RFC 3339 timestamp", name)
	}
	return t.UTC(), nil
}

// splitComma splits a comma-separated parameter, trimming whitespace and
// dropping empty segments.
func splitComma(raw string) []string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writeError maps service and repository errors onto HTTP responses.
// Unrecognized errors become opaque 500s; callers never see internals.
func writeError(c echo.Context, err error) error {
	var resErr *service.ReservationError
	switch {
	case errors.Is(err, service.ErrNotImplemented):
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrReservationNotFound),
		errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrSeatNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrOperatingHoursNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.As(err, &resErr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": resErr.Message})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// subject resolves the authenticated user's full record. Requests whose
// token points at a user the database no longer knows get a 401, which
// distinguishes revoked accounts from permission failures.
func subject(c echo.Context, users service.UserStore) (*model.User, error) {
	id, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
		}
		return nil, writeError(c, err)
	}
	return u, nil
}
