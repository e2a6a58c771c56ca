package service

import (
	"sync"

	"github.com/martcart-next/internal/models"
)

// ExpressNotice 配送拒绝提示
// 保存最近一次同步响应中被拒的条目，驱动可关闭的用户提示；
// 条目不属于购物车本体，每次同步响应全量替换。
type ExpressNotice struct {
	mu    sync.Mutex
	items []models.CartLine
	open  bool
}

// NewExpressNotice 创建提示器
func NewExpressNotice() *ExpressNotice {
	return &ExpressNotice{}
}

// SetItems 全量替换被拒条目
// 集合非空时自动打开提示，变空时自动关闭（限制解除即消失）
func (n *ExpressNotice) SetItems(items []models.CartLine) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append([]models.CartLine(nil), items...)
	n.open = len(n.items) > 0
}

// Items 返回被拒条目副本
func (n *ExpressNotice) Items() []models.CartLine {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.CartLine(nil), n.items...)
}

// IsOpen 提示是否展示中
func (n *ExpressNotice) IsOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.open
}

// Close 用户手动关闭提示（条目保留，等待下次同步替换）
func (n *ExpressNotice) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.open = false
}

// Clear 清空条目并关闭提示
func (n *ExpressNotice) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
	n.open = false
}
