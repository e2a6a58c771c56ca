package service

import (
	"context"
	"strings"

	"github.com/martcart-next/internal/authstate"
	"github.com/martcart-next/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

// SessionService 会话服务
// 消费认证协作方产出的用户 ID 与 bearer 凭据，
// 在游客→用户的身份切换点触发一次迁移同步。
type SessionService struct {
	secret   string // 非空时校验凭据签名，否则按不透明 token 处理
	engine   *SyncEngine
	store    *CartStore
	resolver *IdentityResolver
	notice   *ExpressNotice
}

// NewSessionService 创建会话服务
func NewSessionService(secret string, engine *SyncEngine, store *CartStore, resolver *IdentityResolver, notice *ExpressNotice) *SessionService {
	return &SessionService{
		secret:   strings.TrimSpace(secret),
		engine:   engine,
		store:    store,
		resolver: resolver,
		notice:   notice,
	}
}

// SessionClaims 登录凭据声明
type SessionClaims struct {
	CustomerID string `json:"customer_id"`
	jwt.RegisteredClaims
}

// Login 登录通知：写入用户身份并执行一次迁移同步
// 迁移即把当前全量购物车（游客期累积）以新身份重发，服务端裁决合并结果；
// 迁移同步失败时登录仍生效，购物车保持待同步，游客 token 保留以便重试。
func (s *SessionService) Login(ctx context.Context, customerID, credential string) (migrated bool, err error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return false, ErrCustomerIDRequired
	}
	if err := s.verifyCredential(customerID, credential); err != nil {
		return false, err
	}

	authstate.SetCustomer(customerID)

	result, syncErr := s.engine.Sync(ctx, SyncInput{})
	if syncErr != nil {
		logger.Warnw("cart_migration_sync_failed", "customer_id", customerID, "error", syncErr)
		return false, nil
	}
	if result != nil && result.Identity.IsCustomer() {
		if err := s.resolver.RetireGuestToken(); err != nil {
			logger.Warnw("guest_token_retire_failed", "error", err)
		}
	}
	return true, nil
}

// Logout 登出：清除用户身份并重置本地购物车
func (s *SessionService) Logout() error {
	authstate.ClearCustomer()
	s.notice.Clear()
	return s.store.Clear()
}

// SetZone 更新配送区域并调度一次同步
// 区域变更可能解除此前的配送限制，下一次响应会自动清空提示
func (s *SessionService) SetZone(zone int) {
	authstate.SetZone(zone)
	s.engine.ScheduleSync()
}

func (s *SessionService) verifyCredential(customerID, credential string) error {
	if s.secret == "" {
		return nil
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return ErrCredentialInvalid
	}
	claimed := claims.CustomerID
	if claimed == "" {
		claimed = claims.Subject
	}
	if claimed != customerID {
		return ErrCredentialInvalid
	}
	return nil
}
