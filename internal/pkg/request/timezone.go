package request

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	timezoneHeader = "X-Timezone"
	timezoneKey    = "requestTimezone"
)

// TimezoneMiddleware resolves the client's preferred timezone from the
// X-Timezone header and stores it in the request context. Unknown or
// missing values fall back to the configured default.
func TimezoneMiddleware(defaultName string) gin.HandlerFunc {
	fallback, err := time.LoadLocation(defaultName)
	if err != nil {
		fallback = time.UTC
	}

	return func(c *gin.Context) {
		loc := fallback
		if name := c.GetHeader(timezoneHeader); name != "" {
			if parsed, err := time.LoadLocation(name); err == nil {
				loc = parsed
			}
		}
		c.Set(timezoneKey, loc)
		c.Next()
	}
}

// Location returns the timezone resolved for this request, or UTC.
func Location(c *gin.Context) *time.Location {
	if v, ok := c.Get(timezoneKey); ok {
		if loc, ok := v.(*time.Location); ok {
			return loc
		}
	}
	return time.UTC
}
