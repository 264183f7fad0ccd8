package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return defaultVal
	}
	return i
}

// getDateQueryParam reads ?date=YYYY-MM-DD in the clock's location, today when absent
func getDateQueryParam(r *http.Request, clk clock.Clock) (time.Time, bool) {
	now := clk.Now()
	val := r.URL.Query().Get("date")
	if val == "" {
		return clock.Date(now), true
	}
	return validator.ParseDateIn(val, now.Location())
}
