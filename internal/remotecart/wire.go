package remotecart

import (
	"github.com/martcart-next/internal/constants"
	"github.com/martcart-next/internal/models"
)

// RequestItem 上行购物车项（展示字段不出网，服务端重新推导价格与库存）
type RequestItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// SyncRequest 同步请求体
type SyncRequest struct {
	Items   []RequestItem `json:"items"`
	Zone    int           `json:"zone,omitempty"`    // 配送区域 ID，0 表示未设置
	Deleted []string      `json:"deleted,omitempty"` // 显式删除的 SKU 列表
}

// ResponseItem 下行购物车项，携带权威价格、库存上限与可选错误标记
type ResponseItem struct {
	SKU          string        `json:"sku"`
	Qty          int           `json:"qty"`
	Price        models.Money  `json:"price"`
	SpecialPrice *models.Money `json:"special_price,omitempty"`
	Image        string        `json:"image"`
	MaxQty       int           `json:"max_qty"`
	IsSoldOut    bool          `json:"is_sold_out"`
	StockQty     int           `json:"stock_qty"`
	Error        string        `json:"error,omitempty"`
}

// SyncResponse 同步响应体
type SyncResponse struct {
	Success *bool          `json:"success"`
	Items   []ResponseItem `json:"items"`
}

// Succeeded success 缺省且有 items 时按成功处理
func (r *SyncResponse) Succeeded() bool {
	if r == nil {
		return false
	}
	if r.Success == nil {
		return len(r.Items) > 0
	}
	return *r.Success
}

// ItemKind 解码后条目的类别
type ItemKind int

const (
	// ItemAccepted 服务端接受的条目
	ItemAccepted ItemKind = iota
	// ItemRejectedExpress 配送区域不可达被拒绝的条目
	ItemRejectedExpress
)

// DecodedItem 边界处一次性解码的条目
// 错误标记在这里消化完毕，内部组件不再接触原始可选字段
type DecodedItem struct {
	Kind ItemKind
	Line models.CartLine
}

// ToRequestItems 本地购物车行转为上行格式
func ToRequestItems(lines []models.CartLine) []RequestItem {
	items := make([]RequestItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, RequestItem{SKU: line.SKU, Qty: line.Quantity})
	}
	return items
}

// DecodeItems 下行条目解码为带类别标记的购物车行
func DecodeItems(items []ResponseItem) []DecodedItem {
	decoded := make([]DecodedItem, 0, len(items))
	for _, item := range items {
		kind := ItemAccepted
		if item.Error == constants.ItemErrorExpress {
			kind = ItemRejectedExpress
		}
		decoded = append(decoded, DecodedItem{
			Kind: kind,
			Line: models.CartLine{
				SKU:      item.SKU,
				Quantity: item.Qty,
				Product: models.ProductSnapshot{
					UnitPrice:    item.Price,
					SpecialPrice: item.SpecialPrice,
					Image:        item.Image,
					MaxQty:       item.MaxQty,
					IsSoldOut:    item.IsSoldOut,
					StockQty:     item.StockQty,
				},
			},
		})
	}
	return decoded
}

// Partition 拆分接受与被拒条目
func Partition(decoded []DecodedItem) (accepted, rejected []models.CartLine) {
	for _, item := range decoded {
		if item.Kind == ItemRejectedExpress {
			rejected = append(rejected, item.Line)
			continue
		}
		accepted = append(accepted, item.Line)
	}
	return accepted, rejected
}
