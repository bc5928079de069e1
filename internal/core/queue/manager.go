package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"go.uber.org/zap"
)

// Job 隊列中執行的工作
type Job func(ctx context.Context) (any, error)

// Request 隊列請求
type Request struct {
	Context context.Context
	Job     Job
	Result  chan Result
}

// Result 處理結果
type Result struct {
	Value any
	Error error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	FailedCount    int64 `json:"failed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 固定數量 worker 的有界隊列
type Manager struct {
	workers    int
	maxSize    int
	jobTimeout time.Duration

	queue     chan *Request
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	processed atomic.Int64
	failed    atomic.Int64
}

// NewManager 創建隊列管理器並啟動 worker
func NewManager(cfg config.QueueConfig) *Manager {
	m := &Manager{
		workers:    cfg.Workers,
		maxSize:    cfg.MaxSize,
		jobTimeout: cfg.JobTimeout,
		queue:      make(chan *Request, cfg.MaxSize),
		done:       make(chan struct{}),
	}

	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	common.LogInfo("Queue manager started",
		zap.Int("workers", cfg.Workers),
		zap.Int("max_queue_size", cfg.MaxSize),
		zap.Duration("job_timeout", cfg.JobTimeout),
	)
	return m
}

// Enqueue 將工作加入隊列；隊列已滿時立即回傳 ErrQueueFull
func (m *Manager) Enqueue(ctx context.Context, job Job) (<-chan Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case <-m.done:
		return nil, common.ErrServiceUnavailable.Wrap(fmt.Errorf("queue manager is closed"))
	default:
	}

	req := &Request{
		Context: ctx,
		Job:     job,
		Result:  make(chan Result, 1),
	}

	select {
	case m.queue <- req:
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.maxSize),
		)
		return req.Result, nil
	default:
		common.LogWarn("Queue is full", zap.Int("max_queue_size", m.maxSize))
		return nil, common.ErrQueueFull
	}
}

// Do 加入隊列並等待結果
func (m *Manager) Do(ctx context.Context, job Job) (any, error) {
	resultCh, err := m.Enqueue(ctx, job)
	if err != nil {
		return nil, err
	}

	select {
	case res := <-resultCh:
		return res.Value, res.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Manager) worker(id int) {
	defer m.wg.Done()

	for {
		select {
		case req := <-m.queue:
			m.process(req)
		case <-m.done:
			m.drain(id)
			return
		}
	}
}

func (m *Manager) process(req *Request) {
	ctx := req.Context
	if m.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.jobTimeout)
		defer cancel()
	}

	var res Result
	if err := ctx.Err(); err != nil {
		res.Error = err
	} else {
		res.Value, res.Error = m.run(ctx, req.Job)
	}

	m.processed.Add(1)
	if res.Error != nil {
		m.failed.Add(1)
	}
	req.Result <- res
}

// run 執行工作並將 panic 轉成錯誤
func (m *Manager) run(ctx context.Context, job Job) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("Queue job panicked", zap.Any("panic", r))
			err = common.ErrInternalError.Wrap(fmt.Errorf("job panicked: %v", r))
		}
	}()
	return job(ctx)
}

// drain 關閉後把仍在隊列中的請求標記為失敗
func (m *Manager) drain(id int) {
	for {
		select {
		case req := <-m.queue:
			req.Result <- Result{Error: common.ErrServiceUnavailable.Wrap(fmt.Errorf("queue manager is closed"))}
		default:
			common.LogDebug("Queue worker stopped", zap.Int("worker", id))
			return
		}
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() Status {
	return Status{
		QueueLength:    len(m.queue),
		ProcessedCount: m.processed.Load(),
		FailedCount:    m.failed.Load(),
		MaxQueueSize:   m.maxSize,
		Workers:        m.workers,
	}
}

// Close 停止接受新工作並等待 worker 結束
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.wg.Wait()
		common.LogInfo("Queue manager closed",
			zap.Int64("processed", m.processed.Load()),
			zap.Int64("failed", m.failed.Load()),
		)
	})
}
