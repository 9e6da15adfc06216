package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated subject as a string for use in
// rate-limit and cache keys. JWTAuth stores the raw "sub" claim, which may
// decode as a string or a JSON number depending on the issuer. Requests
// without a token key as "anon".
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	}
	return "anon"
}
