package middleware

import (
	"net/http"
	"strconv"

	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewIPRateLimiter returns middleware that limits by client IP (in-memory store).
// rateFormatted: "100-M", "1000-H", "50-S". Empty disables.
func NewIPRateLimiter(rateFormatted string) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), rate)
	return stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(limitReached)).Handler, nil
}

// NewUserRateLimiter returns middleware that limits by authenticated user.
// Use after AuthValidator; anonymous requests pass through.
func NewUserRateLimiter(rateFormatted string) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	return userLimitMiddleware(limiter.New(memory.NewStore(), rate)), nil
}

func userLimitMiddleware(instance *limiter.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}
			lctx, err := instance.Increment(r.Context(), "user:"+user.ID.String(), 1)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			if lctx.Reset > 0 {
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
			}
			if lctx.Reached {
				limitReached(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func limitReached(w http.ResponseWriter, _ *http.Request) {
	writeErr(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
