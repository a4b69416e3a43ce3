package request

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func timezoneProbe(t *testing.T, defaultName, header string) *time.Location {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got *time.Location
	r := gin.New()
	r.Use(TimezoneMiddleware(defaultName))
	r.GET("/", func(c *gin.Context) {
		got = Location(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-Timezone", header)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestTimezoneMiddleware(t *testing.T) {
	t.Run("Header wins", func(t *testing.T) {
		loc := timezoneProbe(t, "UTC", "Asia/Taipei")
		assert.Equal(t, "Asia/Taipei", loc.String())
	})

	t.Run("Missing header falls back to default", func(t *testing.T) {
		loc := timezoneProbe(t, "Asia/Taipei", "")
		assert.Equal(t, "Asia/Taipei", loc.String())
	})

	t.Run("Garbage header falls back to default", func(t *testing.T) {
		loc := timezoneProbe(t, "UTC", "Not/AZone")
		assert.Equal(t, "UTC", loc.String())
	})

	t.Run("Unknown default falls back to UTC", func(t *testing.T) {
		loc := timezoneProbe(t, "Also/Bogus", "")
		assert.Equal(t, "UTC", loc.String())
	})
}
