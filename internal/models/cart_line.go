package models

import (
	"time"
)

// ProductSnapshot 购物车行的商品展示快照
// 快照可能落后于商品目录，同步响应是纠正快照的唯一权威来源
type ProductSnapshot struct {
	Name         string `gorm:"type:varchar(255)" json:"name"`                  // 商品名称
	UnitPrice    Money  `gorm:"type:decimal(20,2);default:0" json:"unit_price"` // 原价
	SpecialPrice *Money `gorm:"type:decimal(20,2)" json:"special_price"`        // 折扣价（可空）
	Image        string `gorm:"type:varchar(512)" json:"image"`                 // 图片引用
	MaxQty       int    `gorm:"default:0" json:"max_qty"`                       // 单品数量上限
	IsSoldOut    bool   `gorm:"default:false" json:"is_sold_out"`               // 售罄标记
	StockQty     int    `gorm:"default:0" json:"stock_qty"`                     // 库存数量
}

// CartLine 购物车行，每个 SKU 至多一行
type CartLine struct {
	ID        uint            `gorm:"primarykey" json:"-"`
	SKU       string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"` // 商品 SKU
	Quantity  int             `gorm:"not null" json:"quantity"`                         // 数量（正整数，0 以删除行表示）
	Position  int             `gorm:"not null;default:0;index" json:"-"`                // 插入顺序（仅用于展示排序）
	Product   ProductSnapshot `gorm:"embedded;embeddedPrefix:product_" json:"product"`  // 商品快照
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// TableName 指定表名
func (CartLine) TableName() string {
	return "cart_lines"
}

// EffectivePrice 实际结算单价：折扣价存在且更低时取折扣价
func (l CartLine) EffectivePrice() Money {
	if l.Product.SpecialPrice != nil && l.Product.SpecialPrice.LessThan(l.Product.UnitPrice.Decimal) {
		return *l.Product.SpecialPrice
	}
	return l.Product.UnitPrice
}

// LineTotal 行小计
func (l CartLine) LineTotal() Money {
	return NewMoneyFromDecimal(l.EffectivePrice().Mul(decimalFromInt(l.Quantity)))
}
