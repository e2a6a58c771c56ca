package service

import (
	"strings"
	"sync"

	"github.com/martcart-next/internal/models"
	"github.com/martcart-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartStore 本地购物车
// 内存态为用户最新意图，乐观应用变更；每次变更全量落盘。
// 服务端数量上限（max_qty/is_sold_out）只做展示，这里不拦截。
type CartStore struct {
	mu    sync.Mutex
	lines []models.CartLine
	repo  repository.CartLineRepository
}

// NewCartStore 创建本地购物车
func NewCartStore(repo repository.CartLineRepository) *CartStore {
	return &CartStore{repo: repo}
}

// Hydrate 启动时从持久化存储恢复购物车
func (s *CartStore) Hydrate() error {
	if s.repo == nil {
		return nil
	}
	lines, err := s.repo.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
	return nil
}

// AddLine 加入或累加一行；同 SKU 至多一行
func (s *CartStore) AddLine(sku string, qty int, product models.ProductSnapshot) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ErrLineInvalid
	}
	if qty <= 0 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].SKU == sku {
			s.lines[i].Quantity += qty
			s.lines[i].Product = product
			return s.persistLocked()
		}
	}
	s.lines = append(s.lines, models.CartLine{
		SKU:      sku,
		Quantity: qty,
		Product:  product,
	})
	return s.persistLocked()
}

// RemoveLine 删除整行
func (s *CartStore) RemoveLine(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(sku)
}

// DecrementLine 数量减一；数量为 1 时等价于删除整行，绝不产生 0 数量行
func (s *CartStore) DecrementLine(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].SKU != sku {
			continue
		}
		if s.lines[i].Quantity <= 1 {
			return s.removeLocked(sku)
		}
		s.lines[i].Quantity--
		return s.persistLocked()
	}
	return nil
}

// SetQuantity 覆盖数量；qty<=0 时等价于删除整行
func (s *CartStore) SetQuantity(sku string, qty int) error {
	if qty <= 0 {
		return s.RemoveLine(sku)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].SKU == sku {
			s.lines[i].Quantity = qty
			return s.persistLocked()
		}
	}
	return nil
}

// ReplaceAll 全量覆盖为服务端权威状态（仅同步引擎调用）
func (s *CartStore) ReplaceAll(lines []models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append([]models.CartLine(nil), lines...)
	return s.persistLocked()
}

// Clear 清空购物车
func (s *CartStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return s.persistLocked()
}

// Lines 返回当前购物车行的副本（按插入顺序）
func (s *CartStore) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartLine(nil), s.lines...)
}

// TotalItemCount 商品总件数
func (s *CartStore) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice 按实际结算单价计算的总价
func (s *CartStore) TotalPrice() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.LineTotal().Decimal)
	}
	return models.NewMoneyFromDecimal(total)
}

func (s *CartStore) removeLocked(sku string) error {
	for i := range s.lines {
		if s.lines[i].SKU == sku {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

func (s *CartStore) persistLocked() error {
	if s.repo == nil {
		return nil
	}
	return s.repo.SaveSnapshot(s.lines)
}
