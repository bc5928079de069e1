package extract

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"recipe-grocery/internal/core/cache"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"go.uber.org/zap"
)

// LineExtractor 從說明文字取得食材行的外部協作者
type LineExtractor interface {
	ExtractLines(ctx context.Context, caption string) ([]string, error)
}

// Result 擷取結果
type Result struct {
	Lines    []string `json:"lines"`
	CacheHit bool     `json:"cache_hit"`
}

// Service 擷取服務：快取、頻率檢查，再呼叫外部模型
type Service struct {
	extractor   LineExtractor
	cache       *cache.CacheManager
	maxLines    int
	minInterval time.Duration
	now         func() time.Time

	mu          sync.Mutex
	lastRequest time.Time
}

// NewService 創建擷取服務；extractor 為 nil 表示未啟用
func NewService(cfg *config.Config, extractor LineExtractor, cacheManager *cache.CacheManager) *Service {
	var interval time.Duration
	if cfg.RateLimit.Enabled && cfg.RateLimit.Requests > 0 {
		interval = cfg.RateLimit.Window / time.Duration(cfg.RateLimit.Requests)
	}

	return &Service{
		extractor:   extractor,
		cache:       cacheManager,
		maxLines:    cfg.Request.MaxLines,
		minInterval: interval,
		now:         time.Now,
	}
}

// Enabled 是否設定了外部模型
func (s *Service) Enabled() bool {
	return s != nil && s.extractor != nil
}

// Extract 從說明文字擷取食材行
func (s *Service) Extract(ctx context.Context, caption string) (*Result, error) {
	if !s.Enabled() {
		return nil, common.ErrExtractDisabled
	}

	text := strings.TrimSpace(CaptionText(caption))
	if text == "" {
		return nil, common.NewValidationError("caption is required")
	}

	if lines, ok := s.cache.Get(ctx, text); ok {
		return &Result{Lines: lines, CacheHit: true}, nil
	}

	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	start := time.Now()
	lines, err := s.extractor.ExtractLines(ctx, text)
	common.LogExtractCall(time.Since(start), len(lines), err)
	if err != nil {
		return nil, err
	}

	if s.maxLines > 0 && len(lines) > s.maxLines {
		common.LogWarn("Extracted lines truncated",
			zap.Int("lines", len(lines)),
			zap.Int("max_lines", s.maxLines),
		)
		lines = lines[:s.maxLines]
	}

	s.cache.Set(ctx, text, lines)
	return &Result{Lines: lines}, nil
}

// checkRequestRate 檢查對外部模型的請求頻率
func (s *Service) checkRequestRate() error {
	if s.minInterval <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.lastRequest.IsZero() && now.Sub(s.lastRequest) < s.minInterval {
		return common.ErrTooManyRequests.Wrap(fmt.Errorf("extraction requests must be %s apart", s.minInterval))
	}

	s.lastRequest = now
	return nil
}
