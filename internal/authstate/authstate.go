package authstate

import (
	"strings"
	"sync"
)

// 进程级会话状态：当前登录用户与配送区域。
// 同步引擎必须在每次调用时通过这些访问函数读取最新值，
// 不允许在构造期捕获快照，否则登录后飞行中的同步会把购物车
// 归属到过期的游客身份上。

var (
	mu         sync.RWMutex
	customerID string
	zoneID     int
)

// CustomerID 返回当前登录用户 ID，未登录时为空串
func CustomerID() string {
	mu.RLock()
	defer mu.RUnlock()
	return customerID
}

// SetCustomer 写入登录用户 ID
func SetCustomer(id string) {
	mu.Lock()
	defer mu.Unlock()
	customerID = strings.TrimSpace(id)
}

// ClearCustomer 清除登录用户（登出）
func ClearCustomer() {
	mu.Lock()
	defer mu.Unlock()
	customerID = ""
}

// Zone 返回当前配送区域 ID，0 表示未设置
func Zone() int {
	mu.RLock()
	defer mu.RUnlock()
	return zoneID
}

// SetZone 写入配送区域 ID
func SetZone(zone int) {
	mu.Lock()
	defer mu.Unlock()
	zoneID = zone
}

// Reset 重置全部会话状态（仅用于测试）
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	customerID = ""
	zoneID = 0
}
