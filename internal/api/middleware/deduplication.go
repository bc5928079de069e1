package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-grocery/internal/pkg/common"
)

const defaultDedupWindow = time.Second

// deduplicator 記錄最近的 POST 請求指紋
type deduplicator struct {
	window    time.Duration
	now       func() time.Time
	mu        sync.Mutex
	requests  map[string]time.Time
	lastSweep time.Time
}

// Deduplication 在 window 內拒絕相同路徑與內容的重複 POST 請求
func Deduplication(window time.Duration) gin.HandlerFunc {
	return newDeduplicator(window).handle
}

func newDeduplicator(window time.Duration) *deduplicator {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &deduplicator{
		window:   window,
		now:      time.Now,
		requests: make(map[string]time.Time),
	}
}

func (d *deduplicator) handle(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Next()
		return
	}

	fingerprint := c.Request.Method + ":" + c.Request.URL.Path
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.LogWarn("Failed to read request body", zap.Error(err))
			status, resp := common.ToResponse(common.ErrTooLarge)
			c.AbortWithStatusJSON(status, resp)
			return
		}
		hash := sha256.Sum256(body)
		fingerprint += ":" + hex.EncodeToString(hash[:])

		// 恢復請求體
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	if d.seen(fingerprint) {
		common.LogInfo("Duplicate request rejected", zap.String("path", c.Request.URL.Path))
		status, resp := common.ToResponse(common.ErrConflict)
		c.AbortWithStatusJSON(status, resp)
		return
	}

	c.Next()
}

// seen 檢查並記錄指紋，同時清掉過舊的紀錄
func (d *deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if now.Sub(d.lastSweep) > 10*d.window {
		for k, t := range d.requests {
			if now.Sub(t) > d.window {
				delete(d.requests, k)
			}
		}
		d.lastSweep = now
	}

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}
