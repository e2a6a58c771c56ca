package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/martcart-next/internal/http/response"
	"github.com/martcart-next/internal/models"
	"github.com/martcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductPayload 商品快照请求体（来自商品目录协作方）
type ProductPayload struct {
	Name         string        `json:"name"`
	Price        models.Money  `json:"price"`
	SpecialPrice *models.Money `json:"special_price"`
	Image        string        `json:"image"`
	MaxQty       int           `json:"max_qty"`
	IsSoldOut    bool          `json:"is_sold_out"`
	StockQty     int           `json:"stock_qty"`
}

func (p ProductPayload) toSnapshot() models.ProductSnapshot {
	return models.ProductSnapshot{
		Name:         p.Name,
		UnitPrice:    p.Price,
		SpecialPrice: p.SpecialPrice,
		Image:        p.Image,
		MaxQty:       p.MaxQty,
		IsSoldOut:    p.IsSoldOut,
		StockQty:     p.StockQty,
	}
}

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	SKU     string         `json:"sku" binding:"required"`
	Qty     int            `json:"qty"`
	Product ProductPayload `json:"product"`
}

// SetQuantityRequest 数量覆盖请求
type SetQuantityRequest struct {
	Qty int `json:"qty"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	response.Success(c, gin.H{
		"items":            h.CartStore.Lines(),
		"total_item_count": h.CartStore.TotalItemCount(),
		"total_price":      h.CartStore.TotalPrice(),
		"express_error": gin.H{
			"open":  h.ExpressNotice.IsOpen(),
			"items": h.ExpressNotice.Items(),
		},
	})
}

// AddCartItem 加购（乐观本地变更 + 去抖同步）
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "error.bad_request")
		return
	}
	if err := h.CartStore.AddLine(req.SKU, req.Qty, req.Product.toSnapshot()); err != nil {
		if errors.Is(err, service.ErrLineInvalid) {
			response.Error(c, response.CodeBadRequest, "error.cart_line_invalid")
			return
		}
		response.Error(c, response.CodeInternal, "error.cart_update_failed")
		return
	}
	h.SyncEngine.ScheduleSync()
	response.Success(c, gin.H{"updated": true})
}

// SetCartItemQuantity 覆盖某行数量（qty<=0 等价删除）
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		response.Error(c, response.CodeBadRequest, "error.cart_line_invalid")
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "error.bad_request")
		return
	}
	if err := h.CartStore.SetQuantity(sku, req.Qty); err != nil {
		response.Error(c, response.CodeInternal, "error.cart_update_failed")
		return
	}
	h.SyncEngine.ScheduleSync()
	response.Success(c, gin.H{"updated": true})
}

// DecrementCartItem 某行数量减一
func (h *Handler) DecrementCartItem(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		response.Error(c, response.CodeBadRequest, "error.cart_line_invalid")
		return
	}
	if err := h.CartStore.DecrementLine(sku); err != nil {
		response.Error(c, response.CodeInternal, "error.cart_update_failed")
		return
	}
	h.SyncEngine.ScheduleSync()
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除某行，携带显式删除列表立即同步
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		response.Error(c, response.CodeBadRequest, "error.cart_line_invalid")
		return
	}
	if err := h.CartStore.RemoveLine(sku); err != nil {
		response.Error(c, response.CodeInternal, "error.cart_update_failed")
		return
	}
	engine := h.SyncEngine
	go func() {
		// 删除同步失败时本地意图已保留，由下一次同步收敛
		_, _ = engine.Sync(context.Background(), service.SyncInput{Deleted: []string{sku}})
	}()
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	deleted := make([]string, 0)
	for _, line := range h.CartStore.Lines() {
		deleted = append(deleted, line.SKU)
	}
	if err := h.CartStore.Clear(); err != nil {
		response.Error(c, response.CodeInternal, "error.cart_update_failed")
		return
	}
	engine := h.SyncEngine
	go func() {
		_, _ = engine.Sync(context.Background(), service.SyncInput{Deleted: deleted})
	}()
	response.Success(c, gin.H{"cleared": true})
}

// ForceSync 立即执行一次同步（重试入口）
func (h *Handler) ForceSync(c *gin.Context) {
	result, err := h.SyncEngine.Sync(c.Request.Context(), service.SyncInput{})
	if err != nil {
		if errors.Is(err, service.ErrSyncUnavailable) {
			response.Error(c, response.CodeInternal, "error.sync_unavailable")
			return
		}
		response.Error(c, response.CodeSyncFailed, "error.cart_sync_failed")
		return
	}
	response.Success(c, result)
}

// CloseExpressNotice 关闭配送限制提示
func (h *Handler) CloseExpressNotice(c *gin.Context) {
	h.ExpressNotice.Close()
	response.Success(c, gin.H{"closed": true})
}
