package healthcheck

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Checker 定義健康檢查的接口
type Checker interface {
	// Name 返回檢查器的名稱
	Name() string

	// Check 執行健康檢查，如果健康返回 nil，否則返回錯誤
	Check(ctx context.Context) error
}

// CheckType 表示檢查類型：活性檢查或就緒檢查
type CheckType int

const (
	// LivenessCheck 表示活性檢查，確認服務是否運行
	LivenessCheck CheckType = iota

	// ReadinessCheck 表示就緒檢查，確認服務是否可以處理請求
	ReadinessCheck
)

// CheckResult 單一檢查器的結果
type CheckResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report 健康檢查報告
type Report struct {
	Status string        `json:"status"` // ok 或 fail
	Checks []CheckResult `json:"checks"`
}

// Manager 健康檢查管理器，管理各種健康檢查
type Manager struct {
	readyState atomic.Bool
	checkers   map[CheckType][]Checker
	logger     *zap.Logger
	mu         sync.RWMutex
}

// Config 健康檢查管理器配置
type Config struct {
	// Logger 是用於日誌記錄的 zap logger
	Logger *zap.Logger
}

// New 創建一個新的健康檢查管理器
func New(config Config) *Manager {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		checkers: make(map[CheckType][]Checker),
		logger:   logger.With(zap.String("component", "health_manager")),
	}

	// 設置初始狀態為未就緒
	m.readyState.Store(false)

	m.AddLivenessCheck(&PingChecker{})
	m.AddReadinessCheck(&ReadinessStateChecker{manager: m})

	return m
}

// AddChecker 添加一個特定類型的健康檢查器
func (m *Manager) AddChecker(checkType CheckType, checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("添加健康檢查",
		zap.String("checker", checker.Name()),
		zap.Int("type", int(checkType)))

	m.checkers[checkType] = append(m.checkers[checkType], checker)
}

// AddLivenessCheck 添加一個活性檢查
func (m *Manager) AddLivenessCheck(checker Checker) {
	m.AddChecker(LivenessCheck, checker)
}

// AddReadinessCheck 添加一個就緒檢查
func (m *Manager) AddReadinessCheck(checker Checker) {
	m.AddChecker(ReadinessCheck, checker)
}

// SetReady 設置服務的就緒狀態
func (m *Manager) SetReady(ready bool) {
	if m.readyState.Swap(ready) != ready {
		if ready {
			m.logger.Info("服務已標記為就緒")
		} else {
			m.logger.Info("服務已標記為未就緒")
		}
	}
}

// IsReady 返回服務的就緒狀態
func (m *Manager) IsReady() bool {
	return m.readyState.Load()
}

// Run 執行指定類型的所有檢查，全部通過時 Status 為 ok
func (m *Manager) Run(ctx context.Context, types ...CheckType) Report {
	m.mu.RLock()
	var checkers []Checker
	for _, t := range types {
		checkers = append(checkers, m.checkers[t]...)
	}
	m.mu.RUnlock()

	report := Report{Status: "ok", Checks: make([]CheckResult, 0, len(checkers))}
	for _, checker := range checkers {
		result := CheckResult{Name: checker.Name(), OK: true}
		if err := checker.Check(ctx); err != nil {
			m.logger.Warn("健康檢查失敗",
				zap.String("checker", checker.Name()),
				zap.Error(err))
			result.OK = false
			result.Error = err.Error()
			report.Status = "fail"
		}
		report.Checks = append(report.Checks, result)
	}
	return report
}

// handler 創建特定類型的健康檢查處理程序
func (m *Manager) handler(types ...CheckType) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := m.Run(c.Request.Context(), types...)
		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	}
}

// InstallHandlers 在 gin 路由上安裝 /liveness、/readiness 與 /health
func (m *Manager) InstallHandlers(r gin.IRoutes) {
	r.GET("/liveness", m.handler(LivenessCheck))
	r.GET("/readiness", m.handler(ReadinessCheck))
	r.GET("/health", m.handler(LivenessCheck, ReadinessCheck))
	m.logger.Info("安裝健康檢查端點")
}

// ReadinessStateChecker 檢查服務的就緒狀態
type ReadinessStateChecker struct {
	manager *Manager
}

// Name 返回檢查器的名稱
func (r *ReadinessStateChecker) Name() string {
	return "readiness-state"
}

// Check 檢查服務是否就緒
func (r *ReadinessStateChecker) Check(ctx context.Context) error {
	if !r.manager.IsReady() {
		return fmt.Errorf("服務未就緒")
	}
	return nil
}

// PingChecker 是一個簡單的 ping 檢查器
type PingChecker struct{}

// Name 返回檢查器的名稱
func (p *PingChecker) Name() string {
	return "ping"
}

// Check 總是返回成功
func (p *PingChecker) Check(ctx context.Context) error {
	return nil
}
