package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", IPRateLimiter(rps, burst), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func pingFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":51234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIPRateLimiterBurstExhausted(t *testing.T) {
	r := newLimitedRouter(1, 2)

	assert.Equal(t, http.StatusOK, pingFrom(r, "10.1.0.1").Code)
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.1.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(r, "10.1.0.1").Code)
}

func TestIPRateLimiterPerIPIsolation(t *testing.T) {
	r := newLimitedRouter(1, 1)

	assert.Equal(t, http.StatusOK, pingFrom(r, "10.2.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(r, "10.2.0.1").Code)

	// 다른 IP는 별도 버킷을 쓴다
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.2.0.2").Code)
}

func TestGetIPLimiterConcurrentFirstAccess(t *testing.T) {
	const workers = 32
	limiters := make([]*rate.Limiter, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			limiters[i] = getIPLimiter("10.3.0.1", 1, 1)
		}(i)
	}
	wg.Wait()

	// 동시 최초 요청이어도 IP당 버킷은 하나만 만들어진다
	for i := 1; i < workers; i++ {
		assert.Same(t, limiters[0], limiters[i])
	}
}
