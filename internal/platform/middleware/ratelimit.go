// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
	"github.com/taibuivan/vanlife/internal/platform/constants"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// buckets holds one token bucket per client IP.
type buckets struct {
	mu      sync.Mutex
	byIP    map[string]*bucket
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

// take spends a token for ip. When none is available it returns how long
// until one will be.
func (set *buckets) take(ip string, now time.Time) (time.Duration, bool) {
	set.mu.Lock()
	defer set.mu.Unlock()

	entry, ok := set.byIP[ip]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(set.rps, set.burst)}
		set.byIP[ip] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return time.Second, false
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return delay, false
	}
	return 0, true
}

func (set *buckets) sweep(now time.Time) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for ip, entry := range set.byIP {
		if now.Sub(entry.lastSeen) > set.idleTTL {
			delete(set.byIP, ip)
		}
	}
}

// RateLimit applies the default per-IP budget.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	return RateLimitWith(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
}

// RateLimitWith allows rps requests per second per client IP with the given
// burst. Rejections carry Retry-After. Idle buckets are swept until ctx ends.
func RateLimitWith(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	set := &buckets{
		byIP:    make(map[string]*bucket),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: constants.RateLimitClientTTL,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				set.sweep(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			wait, ok := set.take(RealIP(request), time.Now())
			if !ok {
				seconds := int(math.Ceil(wait.Seconds()))
				writer.Header().Set("Retry-After", strconv.Itoa(seconds))
				writeError(writer, apperr.RateLimited(seconds))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
