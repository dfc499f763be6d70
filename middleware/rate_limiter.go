package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/internal/error/response"
)

// 유휴 IP 항목 보존 기간. 이 시간 동안 요청이 없으면 제거된다.
const ipLimiterTTL = 10 * time.Minute

// ipLimiterEntry IP별 한도기와 마지막 요청 시각
type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	ipLimiters   = make(map[string]*ipLimiterEntry)
	ipLimitersMu sync.Mutex
	cleanupOnce  sync.Once
)

// getIPLimiter IP별 한도기 조회 또는 생성.
// 같은 IP의 동시 최초 요청이 버킷을 중복 생성하지 않도록 조회와 생성을 한 락 안에서 처리한다.
func getIPLimiter(ip string, rps float64, burst int) *rate.Limiter {
	ipLimitersMu.Lock()
	defer ipLimitersMu.Unlock()

	if entry, ok := ipLimiters[ip]; ok {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	entry := &ipLimiterEntry{
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		lastSeen: time.Now(),
	}
	ipLimiters[ip] = entry
	return entry.limiter
}

// cleanupIPLimiters 오래 요청이 없던 IP 항목을 주기적으로 제거한다
func cleanupIPLimiters() {
	for range time.Tick(time.Minute) {
		ipLimitersMu.Lock()
		for ip, entry := range ipLimiters {
			if time.Since(entry.lastSeen) > ipLimiterTTL {
				delete(ipLimiters, ip)
			}
		}
		ipLimitersMu.Unlock()
	}
}

// IPRateLimiter IP 기준 요청 빈도 제한 미들웨어
func IPRateLimiter(rps float64, burst int) gin.HandlerFunc {
	cleanupOnce.Do(func() { go cleanupIPLimiters() })

	return func(c *gin.Context) {
		limiter := getIPLimiter(c.ClientIP(), rps, burst)
		if !limiter.Allow() {
			response.Fail(c, code.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
