package app

import (
	"context"

	"github.com/martcart-next/internal/service"
)

// EngineService 同步引擎生命周期封装
// 引擎本身由 HTTP 请求驱动，这里只负责退出时停掉未触发的去抖定时器
type EngineService struct {
	engine *service.SyncEngine
}

// NewEngineService 创建引擎服务
func NewEngineService(engine *service.SyncEngine) *EngineService {
	return &EngineService{engine: engine}
}

// Name 服务名称
func (s *EngineService) Name() string {
	return "sync-engine"
}

// Start 等待退出信号
func (s *EngineService) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Stop 停止去抖定时器
func (s *EngineService) Stop(ctx context.Context) error {
	if s.engine != nil {
		s.engine.Stop()
	}
	return nil
}
