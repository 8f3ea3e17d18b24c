package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Progression pings are cheap but chatty: every app open fires one. The
// per-client budget is generous on burst and tight on sustained rate.
const (
	clientRate  = rate.Limit(5)
	clientBurst = 30
	clientTTL   = 3 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	clientsMu sync.Mutex
	clients   = map[string]*client{}
)

func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiterFor(clientIP(r)).Allow() {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the proxy header since the API runs behind a load
// balancer in production.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func limiterFor(ip string) *rate.Limiter {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	c, ok := clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(clientRate, clientBurst)}
		clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

// CleanupVisitors evicts clients idle past their TTL so the map stays
// bounded. Run it as a goroutine from main.
func CleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		clientsMu.Lock()
		for ip, c := range clients {
			if time.Since(c.lastSeen) > clientTTL {
				delete(clients, ip)
			}
		}
		clientsMu.Unlock()
	}
}
