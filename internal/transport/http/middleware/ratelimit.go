package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/aduvernay/staffing-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"
)

const errTooManyRequests = "Too many requests"

// RateLimiter caps each client address at max requests per window, shared
// process-wide. State is in-memory only and does not survive restarts.
type RateLimiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	clients map[string]*client

	cron *cron.Cron
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter builds the limiter and starts a periodic sweep that evicts
// clients idle for longer than the window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		max:     max,
		window:  window,
		clients: make(map[string]*client),
		cron:    cron.New(),
	}
	if _, err := rl.cron.AddFunc("@every 1m", rl.sweep); err != nil {
		panic(err) // static schedule expression
	}
	rl.cron.Start()
	return rl
}

// Stop halts the background sweep.
func (rl *RateLimiter) Stop() {
	rl.cron.Stop()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			metrics.RateLimitedTotal.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errTooManyRequests})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &client{
			limiter: rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.max)), rl.max),
		}
		rl.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, cl := range rl.clients {
		if time.Since(cl.lastSeen) >= rl.window {
			delete(rl.clients, ip)
		}
	}
}
