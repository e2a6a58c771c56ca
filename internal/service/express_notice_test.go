package service

import (
	"testing"

	"github.com/martcart-next/internal/models"
)

func TestExpressNoticeReplaceSemantics(t *testing.T) {
	notice := NewExpressNotice()
	if notice.IsOpen() {
		t.Fatalf("new notice must be closed")
	}

	notice.SetItems([]models.CartLine{{SKU: "a", Quantity: 1}})
	if !notice.IsOpen() {
		t.Fatalf("non-empty set must open notice")
	}

	// 每次同步全量替换，不做并集
	notice.SetItems([]models.CartLine{{SKU: "b", Quantity: 2}})
	items := notice.Items()
	if len(items) != 1 || items[0].SKU != "b" {
		t.Fatalf("items must be replaced, got %+v", items)
	}

	// 变空即自动关闭（限制解除）
	notice.SetItems(nil)
	if notice.IsOpen() {
		t.Fatalf("empty set must close notice")
	}
	if len(notice.Items()) != 0 {
		t.Fatalf("items must be empty")
	}
}

func TestExpressNoticeCloseKeepsItems(t *testing.T) {
	notice := NewExpressNotice()
	notice.SetItems([]models.CartLine{{SKU: "a", Quantity: 1}})

	notice.Close()
	if notice.IsOpen() {
		t.Fatalf("close must hide notice")
	}
	if len(notice.Items()) != 1 {
		t.Fatalf("close must keep items until next sync")
	}

	// 下一次响应仍有被拒条目 → 重新打开
	notice.SetItems([]models.CartLine{{SKU: "a", Quantity: 1}})
	if !notice.IsOpen() {
		t.Fatalf("next rejection must reopen notice")
	}
}
