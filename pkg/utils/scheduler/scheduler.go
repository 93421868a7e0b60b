// Package scheduler 提供基於 go-co-op/gocron 的排程功能，
// 主要用於定時抓取新開獎並刷新歷史資料快照。
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// JobFunc 排程任務，ctx 在排程器停止時取消
type JobFunc func(ctx context.Context)

// Scheduler 是對 gocron 排程器的包裝，提供週期任務的管理功能
type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*gocron.Job
	mutex     sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *zap.Logger
}

// New 創建並返回一個新的排程器實例
func New(logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		jobs:      make(map[string]*gocron.Job),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.With(zap.String("component", "scheduler")),
	}
}

// Start 啟動排程器
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop 停止排程器並取消執行中任務的 ctx
func (s *Scheduler) Stop() {
	s.cancel()
	s.scheduler.Stop()
}

// ScheduleRecurring 安排一個週期性任務
// - interval: 時間間隔，例如 30*time.Minute
// - jobID: 任務ID，用於識別和取消任務
// - immediately: 是否在排程後立即執行一次
// 同一任務上一次尚未結束時不會重複執行
func (s *Scheduler) ScheduleRecurring(interval time.Duration, jobID string, immediately bool, fn JobFunc) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %s for job %s", interval, jobID)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	// 檢查是否已存在相同ID的任務
	if _, exists := s.jobs[jobID]; exists {
		return fmt.Errorf("job with ID %s already exists", jobID)
	}

	chain := s.scheduler.Every(interval).SingletonMode()
	if !immediately {
		chain = chain.WaitForSchedule()
	}

	job, err := chain.Do(func() {
		s.executeJob(jobID, fn)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule recurring job: %w", err)
	}

	// 儲存任務引用
	s.jobs[jobID] = job
	s.logger.Info("已安排週期任務", zap.String("jobID", jobID), zap.Duration("interval", interval))

	return nil
}

// CancelJob 取消指定ID的任務
func (s *Scheduler) CancelJob(jobID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if job, exists := s.jobs[jobID]; exists {
		s.scheduler.RemoveByReference(job)
		delete(s.jobs, jobID)
		return true
	}

	return false
}

// JobExists 檢查指定ID的任務是否存在
func (s *Scheduler) JobExists(jobID string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, exists := s.jobs[jobID]
	return exists
}

// GetAllJobs 返回所有當前活動的任務ID
func (s *Scheduler) GetAllJobs() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	jobIDs := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		jobIDs = append(jobIDs, id)
	}

	return jobIDs
}

// executeJob 執行任務函數，panic 只記錄不擴散
func (s *Scheduler) executeJob(jobID string, fn JobFunc) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("任務執行異常", zap.String("jobID", jobID), zap.Any("panic", r))
		}
	}()

	if s.ctx.Err() != nil {
		return
	}
	fn(s.ctx)
}
