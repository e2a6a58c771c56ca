package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/martcart-next/internal/authstate"
	"github.com/martcart-next/internal/http/response"
	"github.com/martcart-next/internal/models"
	"github.com/martcart-next/internal/provider"
	"github.com/martcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Cleanup(authstate.Reset)
	authstate.Reset()

	store := service.NewCartStore(nil)
	resolver := service.NewIdentityResolver(nil)
	notice := service.NewExpressNotice()
	engine := service.NewSyncEngine(store, resolver, notice, nil, 0)
	t.Cleanup(engine.Stop)

	return New(&provider.Container{
		CartStore:        store,
		IdentityResolver: resolver,
		ExpressNotice:    notice,
		SyncEngine:       engine,
		SessionService:   service.NewSessionService("", engine, store, resolver, notice),
	})
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return resp
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target, body string, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	handler(c)
	return w
}

func TestGetCartEnvelope(t *testing.T) {
	h := newTestHandler(t)
	if err := h.CartStore.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple"}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	h.ExpressNotice.SetItems([]models.CartLine{{SKU: "frozen", Quantity: 1}})

	w := performJSON(t, h.GetCart, http.MethodGet, "/api/v1/cart", "", nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status code want 0 got %d", resp.StatusCode)
	}

	data := resp.Data.(map[string]interface{})
	if data["total_item_count"].(float64) != 2 {
		t.Fatalf("total_item_count want 2 got %v", data["total_item_count"])
	}
	expressError := data["express_error"].(map[string]interface{})
	if expressError["open"] != true {
		t.Fatalf("express_error.open want true got %v", expressError["open"])
	}
}

func TestAddCartItem(t *testing.T) {
	h := newTestHandler(t)

	w := performJSON(t, h.AddCartItem, http.MethodPost, "/api/v1/cart/items",
		`{"sku":"apple","qty":2,"product":{"name":"Apple","price":2.5}}`, nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status code want 0 got %d, msg=%s", resp.StatusCode, resp.Msg)
	}

	lines := h.CartStore.Lines()
	if len(lines) != 1 || lines[0].SKU != "apple" || lines[0].Quantity != 2 {
		t.Fatalf("cart unexpected: %+v", lines)
	}
	if lines[0].Product.UnitPrice.String() != "2.50" {
		t.Fatalf("price want 2.50 got %s", lines[0].Product.UnitPrice.String())
	}
}

func TestAddCartItemRequiresSKU(t *testing.T) {
	h := newTestHandler(t)

	w := performJSON(t, h.AddCartItem, http.MethodPost, "/api/v1/cart/items", `{"qty":1}`, nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status code want 400 got %d", resp.StatusCode)
	}
}

func TestSetCartItemQuantityZeroRemoves(t *testing.T) {
	h := newTestHandler(t)
	if err := h.CartStore.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple"}); err != nil {
		t.Fatalf("add line: %v", err)
	}

	w := performJSON(t, h.SetCartItemQuantity, http.MethodPut, "/api/v1/cart/items/apple",
		`{"qty":0}`, gin.Params{{Key: "sku", Value: "apple"}})
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status code want 0 got %d", resp.StatusCode)
	}
	if len(h.CartStore.Lines()) != 0 {
		t.Fatalf("zero quantity must remove line")
	}
}

func TestDecrementCartItem(t *testing.T) {
	h := newTestHandler(t)
	if err := h.CartStore.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple"}); err != nil {
		t.Fatalf("add line: %v", err)
	}

	w := performJSON(t, h.DecrementCartItem, http.MethodPost, "/api/v1/cart/items/apple/decrement",
		"", gin.Params{{Key: "sku", Value: "apple"}})
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status code want 0 got %d", resp.StatusCode)
	}
	if got := h.CartStore.Lines()[0].Quantity; got != 1 {
		t.Fatalf("quantity want 1 got %d", got)
	}
}

func TestDeleteCartItem(t *testing.T) {
	h := newTestHandler(t)
	if err := h.CartStore.AddLine("apple", 2, models.ProductSnapshot{Name: "Apple"}); err != nil {
		t.Fatalf("add line: %v", err)
	}

	w := performJSON(t, h.DeleteCartItem, http.MethodDelete, "/api/v1/cart/items/apple",
		"", gin.Params{{Key: "sku", Value: "apple"}})
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status code want 0 got %d", resp.StatusCode)
	}
	if len(h.CartStore.Lines()) != 0 {
		t.Fatalf("line must be removed")
	}
}

func TestForceSyncWithoutRemote(t *testing.T) {
	h := newTestHandler(t)

	w := performJSON(t, h.ForceSync, http.MethodPost, "/api/v1/cart/sync", "", nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeInternal {
		t.Fatalf("status code want 500 got %d", resp.StatusCode)
	}
	if resp.Msg != "error.sync_unavailable" {
		t.Fatalf("msg want error.sync_unavailable got %s", resp.Msg)
	}
}

func TestCloseExpressNotice(t *testing.T) {
	h := newTestHandler(t)
	h.ExpressNotice.SetItems([]models.CartLine{{SKU: "frozen", Quantity: 1}})

	w := performJSON(t, h.CloseExpressNotice, http.MethodPost, "/api/v1/cart/express-notice/close", "", nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status code want 0 got %d", resp.StatusCode)
	}
	if h.ExpressNotice.IsOpen() {
		t.Fatalf("notice must be closed")
	}
}
