package class

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionIsBookable(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		startTime time.Time
		available int
		want      bool
	}{
		{"Future with free slots", now.Add(time.Hour), 3, true},
		{"Future but full", now.Add(time.Hour), 0, false},
		{"Already started", now.Add(-time.Minute), 3, false},
		{"Starts exactly now", now, 3, false},
		{"Past and full", now.Add(-time.Hour), 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Session{
				StartTime:      tc.startTime,
				TotalSlots:     10,
				AvailableSlots: tc.available,
			}
			assert.Equal(t, tc.want, s.IsBookable(now))
		})
	}
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, Category("yoga").Valid())
	assert.True(t, Category("zumba").Valid())
	assert.True(t, Category("hiit").Valid())
	assert.False(t, Category("pilates").Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("YOGA").Valid())
}
