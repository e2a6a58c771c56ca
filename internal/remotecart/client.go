package remotecart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/martcart-next/internal/constants"
)

var (
	ErrConfigInvalid   = errors.New("remotecart config invalid")
	ErrRequestFailed   = errors.New("remotecart request failed")
	ErrResponseInvalid = errors.New("remotecart response invalid")
)

const defaultTimeout = 10 * time.Second

// Config 远端购物车服务配置
type Config struct {
	BaseURL      string        // 网关地址，如 https://cart.example.com
	GuestPath    string        // 游客同步接口路径
	CustomerPath string        // 用户同步接口路径
	Timeout      time.Duration // 请求超时
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.GuestPath = strings.TrimSpace(c.GuestPath)
	c.CustomerPath = strings.TrimSpace(c.CustomerPath)
	if c.GuestPath == "" {
		c.GuestPath = "/api/v2/guest/cart/sync"
	}
	if c.CustomerPath == "" {
		c.CustomerPath = "/api/v2/customer/cart/sync"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// ValidateConfig 校验配置
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	return nil
}

// Client 远端购物车服务客户端
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient 创建客户端
func NewClient(cfg Config) (*Client, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// SyncGuest 按游客身份同步，token 为匿名购物车句柄
func (c *Client) SyncGuest(ctx context.Context, token string, req SyncRequest) (*SyncResponse, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: guest token is empty", ErrConfigInvalid)
	}
	return c.post(ctx, c.cfg.GuestPath, constants.HeaderGuestToken, token, req)
}

// SyncCustomer 按登录用户身份同步
func (c *Client) SyncCustomer(ctx context.Context, customerID string, req SyncRequest) (*SyncResponse, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customer id is empty", ErrConfigInvalid)
	}
	return c.post(ctx, c.cfg.CustomerPath, constants.HeaderCustomerID, customerID, req)
}

func (c *Client) post(ctx context.Context, path, identityHeader, identityValue string, req SyncRequest) (*SyncResponse, error) {
	if req.Items == nil {
		req.Items = []RequestItem{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrRequestFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(identityHeader, identityValue)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrRequestFailed, err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, httpResp.StatusCode)
	}

	var resp SyncResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return &resp, nil
}
