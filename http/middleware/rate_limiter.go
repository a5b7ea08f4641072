package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/trailhead"
	"golang.org/x/time/rate"
)

// visitorIdle is how long a quiet visitor's limiter is kept.
const visitorIdle = time.Hour

// A Visitor is one client IP and the token bucket it draws requests from.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// Visitors hands out a rate.Limiter per client IP.
type Visitors struct {
	mu        sync.Mutex
	burst     int
	limit     rate.Limit
	byIP      map[string]Visitor
	lastSweep time.Time
}

// NewVisitors allows each IP 5 requests a second, in bursts of up to 20.
func NewVisitors() *Visitors { return NewVisitorsWithLimit(5, 20) }

func NewVisitorsWithLimit(perSecond float64, burst int) *Visitors {
	return &Visitors{burst: burst, limit: rate.Limit(perSecond), byIP: make(map[string]Visitor)}
}

// Fetch returns the Visitor for ip, marking it seen now.
// Visitors idle for over an hour are forgotten, at most once a minute.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	now := time.Now().UTC()
	if now.Sub(vs.lastSweep) > time.Minute {
		for k, v := range vs.byIP {
			if now.Sub(v.LastSeen) > visitorIdle {
				delete(vs.byIP, k)
			}
		}
		vs.lastSweep = now
	}

	v, ok := vs.byIP[ip]
	if !ok {
		v.Limiter = rate.NewLimiter(vs.limit, vs.burst)
	}
	v.LastSeen = now
	vs.byIP[ip] = v

	return v
}

// RateLimit answers 429 once a client IP spends its burst.
// The IP comes from InjectIPAddress when it ran first, ClientIP otherwise.
//
// A nil visitors makes RateLimit a NoopAdapter.
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, ok := r.Context().Value(trailhead.IpAddrKey).(string)
			if !ok {
				ip = ClientIP(r)
			}

			if !visitors.Fetch(ip).Limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
