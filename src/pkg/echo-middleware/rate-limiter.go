package echomw

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Per client IP; a report render is expensive so the defaults are tight.
var (
	clients   = make(map[string]*rate.Limiter)
	mu        sync.Mutex
	rateLimit = DefaultValueConfig().MiddlewareRateLimit // requests per second
	burst     = DefaultValueConfig().MiddlewareBurst     // requests allowed at once
)

func UpdateRateLimits(rateLimitInput, burstInput int) {
	mu.Lock()
	defer mu.Unlock()
	rateLimit = rateLimitInput
	burst = burstInput
	clients = make(map[string]*rate.Limiter)
}

// getLimiter returns the rate limiter for the given IP address.
func getLimiter(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	limiter, exists := clients[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), burst)
		clients[ip] = limiter

		// forget idle clients after a minute
		go func(limits map[string]*rate.Limiter) {
			time.Sleep(time.Minute)
			mu.Lock()
			delete(limits, ip)
			mu.Unlock()
		}(clients)
	}
	return limiter
}

// Custom rate limiting middleware based on client IP address
func RateLimiterMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		limiter := getLimiter(c.RealIP())
		if !limiter.Allow() {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		}
		return next(c)
	}
}
