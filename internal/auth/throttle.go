package auth

import (
	"sync"
	"time"

	"restoran-pos/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle keeps one token bucket per client key. Buckets idle for longer
// than limiterIdleTTL are swept on access.
type Throttle struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewThrottle allows perMinute attempts per key, refilled evenly over a minute.
func NewThrottle(perMinute int) *Throttle {
	return &Throttle{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if now.Sub(t.lastSweep) > limiterIdleTTL {
		for k, v := range t.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(t.visitors, k)
			}
		}
		t.lastSweep = now
	}

	v, ok := t.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests from an IP whose bucket is empty.
func (t *Throttle) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !t.Allow(c.IP()) {
			return apperr.TooManyRequests("too many login attempts, try again later")
		}
		return c.Next()
	}
}
