package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/martcart-next/internal/authstate"
	"github.com/martcart-next/internal/logger"
	"github.com/martcart-next/internal/models"
	"github.com/martcart-next/internal/remotecart"
)

const defaultDebounce = 300 * time.Millisecond

// SyncInput 一次同步的输入
type SyncInput struct {
	Override []models.CartLine // 部分行覆盖；nil 时在调用时读取最新全量购物车
	Deleted  []string          // 显式删除的 SKU 列表
}

// ReconciliationResult 一次同步的对账结果
type ReconciliationResult struct {
	Identity Identity          `json:"identity"`
	Accepted []models.CartLine `json:"accepted"`
	Rejected []models.CartLine `json:"rejected"` // 配送区域不可达被隔离的条目
	Applied  bool              `json:"applied"`  // 响应畸形时为 false（本地状态原样保留）
}

// SyncEngine 同步引擎
// 负责一次完整往返：身份解析、载荷编码、按身份分发、权威覆盖与错误隔离。
// 所有同步（含登录迁移）串行通过同一把锁，晚到的游客响应不可能覆盖
// 已迁移的用户购物车。
type SyncEngine struct {
	mu       sync.Mutex
	store    *CartStore
	resolver *IdentityResolver
	notice   *ExpressNotice
	client   *remotecart.Client
	debounce time.Duration

	timerMu sync.Mutex
	timer   *time.Timer
}

// NewSyncEngine 创建同步引擎
func NewSyncEngine(store *CartStore, resolver *IdentityResolver, notice *ExpressNotice, client *remotecart.Client, debounce time.Duration) *SyncEngine {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &SyncEngine{
		store:    store,
		resolver: resolver,
		notice:   notice,
		client:   client,
		debounce: debounce,
	}
}

// Sync 执行一次同步往返
// 身份与购物车状态都在持锁后读取，保证拿到的是当下最新值。
// 传输失败不触碰本地状态，调用方负责提供重试入口。
func (e *SyncEngine) Sync(ctx context.Context, input SyncInput) (*ReconciliationResult, error) {
	if e.client == nil {
		return nil, ErrSyncUnavailable
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	identity, err := e.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	lines := input.Override
	if lines == nil {
		lines = e.store.Lines()
	}

	req := remotecart.SyncRequest{
		Items:   remotecart.ToRequestItems(lines),
		Zone:    authstate.Zone(),
		Deleted: input.Deleted,
	}

	var resp *remotecart.SyncResponse
	if identity.IsCustomer() {
		resp, err = e.client.SyncCustomer(ctx, identity.CustomerID, req)
	} else {
		resp, err = e.client.SyncGuest(ctx, identity.GuestToken, req)
	}
	if err != nil {
		if errors.Is(err, remotecart.ErrResponseInvalid) {
			// 畸形响应按无操作对账处理，乐观本地状态保持
			logger.Debugw("cart_sync_response_invalid", "identity", identity.Kind, "error", err)
			return &ReconciliationResult{Identity: identity, Applied: false}, nil
		}
		logger.Warnw("cart_sync_request_failed", "identity", identity.Kind, "error", err)
		return nil, err
	}
	if resp.Items == nil {
		logger.Debugw("cart_sync_items_missing", "identity", identity.Kind)
		return &ReconciliationResult{Identity: identity, Applied: false}, nil
	}

	accepted, rejected := remotecart.Partition(remotecart.DecodeItems(resp.Items))

	// 响应不携带商品名称，沿用本地快照中的名称
	names := make(map[string]string, len(lines))
	for _, line := range e.store.Lines() {
		names[line.SKU] = line.Product.Name
	}
	for _, line := range lines {
		if line.Product.Name != "" {
			names[line.SKU] = line.Product.Name
		}
	}
	fillNames(accepted, names)
	fillNames(rejected, names)

	if err := e.store.ReplaceAll(accepted); err != nil {
		logger.Warnw("cart_sync_persist_failed", "error", err)
	}
	e.notice.SetItems(rejected)

	logger.Infow("cart_sync_reconciled",
		"identity", identity.Kind,
		"accepted", len(accepted),
		"rejected", len(rejected),
		"success", resp.Succeeded(),
	)

	return &ReconciliationResult{
		Identity: identity,
		Accepted: accepted,
		Rejected: rejected,
		Applied:  true,
	}, nil
}

// ScheduleSync 去抖调度一次全量同步
// 窗口内的多次变更合并为一次往返
func (e *SyncEngine) ScheduleSync() {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		if _, err := e.Sync(context.Background(), SyncInput{}); err != nil {
			logger.Warnw("cart_sync_scheduled_failed", "error", err)
		}
	})
}

// Stop 停止未触发的去抖定时器
func (e *SyncEngine) Stop() {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func fillNames(lines []models.CartLine, names map[string]string) {
	for i := range lines {
		if lines[i].Product.Name == "" {
			lines[i].Product.Name = names[lines[i].SKU]
		}
	}
}
