package service

import (
	"fmt"
	"testing"

	"github.com/martcart-next/internal/models"
	"github.com/martcart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.CartLine{}, &models.GuestIdentity{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func money(n int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(n))
}

func TestCartStoreAddLineMergesSameSKU(t *testing.T) {
	store := NewCartStore(nil)

	if err := store.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple", UnitPrice: money(3)}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.AddLine("apple", 1, models.ProductSnapshot{Name: "Apple", UnitPrice: money(3)}); err != nil {
		t.Fatalf("add line again: %v", err)
	}

	lines := store.Lines()
	if len(lines) != 1 {
		t.Fatalf("same sku must stay one line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", lines[0].Quantity)
	}
}

func TestCartStoreAddLineDefaultsQuantity(t *testing.T) {
	store := NewCartStore(nil)
	if err := store.AddLine("pear", 0, models.ProductSnapshot{Name: "Pear"}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.AddLine("plum", -5, models.ProductSnapshot{Name: "Plum"}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	for _, line := range store.Lines() {
		if line.Quantity != 1 {
			t.Fatalf("%s quantity want 1 got %d", line.SKU, line.Quantity)
		}
	}
}

func TestCartStoreAddLineRejectsEmptySKU(t *testing.T) {
	store := NewCartStore(nil)
	if err := store.AddLine("  ", 1, models.ProductSnapshot{}); err != ErrLineInvalid {
		t.Fatalf("want ErrLineInvalid got %v", err)
	}
}

func TestCartStoreDecrementRemovesAtOne(t *testing.T) {
	store := NewCartStore(nil)
	if err := store.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple"}); err != nil {
		t.Fatalf("add line: %v", err)
	}

	if err := store.DecrementLine("apple"); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if got := store.Lines()[0].Quantity; got != 1 {
		t.Fatalf("quantity want 1 got %d", got)
	}

	// 数量 1 再减一 = 整行删除，绝不出现 0 数量行
	if err := store.DecrementLine("apple"); err != nil {
		t.Fatalf("decrement to zero: %v", err)
	}
	if got := len(store.Lines()); got != 0 {
		t.Fatalf("line should be removed, got %d lines", got)
	}
}

func TestCartStoreSetQuantityZeroRemoves(t *testing.T) {
	store := NewCartStore(nil)
	if err := store.AddLine("apple", 3, models.ProductSnapshot{Name: "Apple"}); err != nil {
		t.Fatalf("add line: %v", err)
	}

	if err := store.SetQuantity("apple", 5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got := store.Lines()[0].Quantity; got != 5 {
		t.Fatalf("quantity want 5 got %d", got)
	}

	if err := store.SetQuantity("apple", 0); err != nil {
		t.Fatalf("set quantity zero: %v", err)
	}
	if got := len(store.Lines()); got != 0 {
		t.Fatalf("zero quantity must remove line, got %d lines", got)
	}
}

func TestCartStoreTotals(t *testing.T) {
	store := NewCartStore(nil)
	special := money(4)
	if err := store.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple", UnitPrice: money(5), SpecialPrice: &special}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.AddLine("pear", 3, models.ProductSnapshot{Name: "Pear", UnitPrice: money(2)}); err != nil {
		t.Fatalf("add line: %v", err)
	}

	if got := store.TotalItemCount(); got != 5 {
		t.Fatalf("item count want 5 got %d", got)
	}
	// 2*4（特价生效）+ 3*2 = 14
	if got := store.TotalPrice().String(); got != "14.00" {
		t.Fatalf("total price want 14.00 got %s", got)
	}
}

func TestCartStorePersistAndHydrate(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewCartLineRepository(db)

	store := NewCartStore(repo)
	if err := store.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple", UnitPrice: money(3)}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.AddLine("pear", 1, models.ProductSnapshot{Name: "Pear", UnitPrice: money(2)}); err != nil {
		t.Fatalf("add line: %v", err)
	}

	// 模拟重启：新实例从同一持久层恢复
	revived := NewCartStore(repo)
	if err := revived.Hydrate(); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	lines := revived.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines want 2 got %d", len(lines))
	}
	if lines[0].SKU != "apple" || lines[1].SKU != "pear" {
		t.Fatalf("insertion order lost: %s, %s", lines[0].SKU, lines[1].SKU)
	}
	if lines[0].Product.Name != "Apple" {
		t.Fatalf("snapshot name lost: %q", lines[0].Product.Name)
	}
}

func TestCartStoreReplaceAllOverwrites(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewCartLineRepository(db)
	store := NewCartStore(repo)

	if err := store.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple"}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.ReplaceAll([]models.CartLine{
		{SKU: "pear", Quantity: 4, Product: models.ProductSnapshot{Name: "Pear"}},
	}); err != nil {
		t.Fatalf("replace all: %v", err)
	}

	lines := store.Lines()
	if len(lines) != 1 || lines[0].SKU != "pear" || lines[0].Quantity != 4 {
		t.Fatalf("replace all result unexpected: %+v", lines)
	}

	saved, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(saved) != 1 || saved[0].SKU != "pear" {
		t.Fatalf("persisted snapshot unexpected: %+v", saved)
	}
}
