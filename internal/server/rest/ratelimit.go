package rest

import (
	"net/http"

	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewIPRateLimiter returns middleware that limits by client IP (in-memory
// store). rateFormatted: "20-M", "1000-H", "5-S". Empty disables.
func NewIPRateLimiter(rateFormatted string) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), rate)
	mw := stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusTooManyRequests, "Too many requests, please try again later")
	}))
	return mw.Handler, nil
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
