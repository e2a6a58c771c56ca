package ui

import "github.com/martcart-next/internal/provider"

// Handler 门店前端接口处理器入口
// 说明：该处理器仅供店面 UI 驱动购物车引擎，不对公网暴露。
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
