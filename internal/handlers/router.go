package handlers

import (
	"net/http"

	"github.com/ukydev/ring-traffic/internal/middleware"
)

// RouterConfig holds what the observer API is built from
type RouterConfig struct {
	Auth                   *AuthHandler
	Frames                 *FrameHandler
	AuthMiddleware         *middleware.AuthMiddleware
	RateLimiter            *middleware.RateLimitMiddleware
	RateLimitRequests      int
	RateLimitWindowSeconds int
}

// NewRouter wires the observer API
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", Health)
	mux.HandleFunc("/api/auth/token", cfg.Auth.Token)
	mux.HandleFunc("/api/frame", cfg.Frames.Frame)
	mux.HandleFunc("/api/track", cfg.Frames.Track)

	var h http.Handler = mux
	h = cfg.AuthMiddleware.Authenticate(h)
	h = cfg.RateLimiter.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindowSeconds)(h)
	return middleware.RequestLogger(h)
}
