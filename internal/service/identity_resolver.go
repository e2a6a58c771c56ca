package service

import (
	"sync"

	"github.com/martcart-next/internal/authstate"
	"github.com/martcart-next/internal/constants"
	"github.com/martcart-next/internal/repository"

	"github.com/google/uuid"
)

// Identity 一次同步所使用的身份
type Identity struct {
	Kind       string `json:"kind"`                  // guest / customer
	GuestToken string `json:"guest_token,omitempty"` // 匿名购物车句柄
	CustomerID string `json:"customer_id,omitempty"` // 登录用户 ID
}

// IsCustomer 是否登录用户身份
func (i Identity) IsCustomer() bool {
	return i.Kind == constants.IdentityKindCustomer
}

// IdentityResolver 身份解析器
// 每次同步调用时实时解析，绝不跨调用缓存结果：
// 登录可能发生在两次同步之间，缓存会把购物车归到过期的游客身份。
type IdentityResolver struct {
	mu         sync.Mutex
	guestRepo  repository.GuestIdentityRepository
	guestToken string // 已加载的游客 token，仅作为持久层的读缓存
}

// NewIdentityResolver 创建身份解析器
func NewIdentityResolver(guestRepo repository.GuestIdentityRepository) *IdentityResolver {
	return &IdentityResolver{guestRepo: guestRepo}
}

// Resolve 解析当下身份：已登录返回 Customer，否则返回（必要时懒创建的）Guest
func (r *IdentityResolver) Resolve() (Identity, error) {
	if customerID := authstate.CustomerID(); customerID != "" {
		return Identity{Kind: constants.IdentityKindCustomer, CustomerID: customerID}, nil
	}

	token, err := r.ensureGuestToken()
	if err != nil {
		return Identity{}, err
	}
	return Identity{Kind: constants.IdentityKindGuest, GuestToken: token}, nil
}

// RetireGuestToken 废弃游客身份（迁移同步成功后调用）
func (r *IdentityResolver) RetireGuestToken() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guestToken = ""
	if r.guestRepo == nil {
		return nil
	}
	return r.guestRepo.Delete()
}

func (r *IdentityResolver) ensureGuestToken() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.guestToken != "" {
		return r.guestToken, nil
	}
	if r.guestRepo != nil {
		identity, err := r.guestRepo.Get()
		if err != nil {
			return "", err
		}
		if identity != nil && identity.Token != "" {
			r.guestToken = identity.Token
			return r.guestToken, nil
		}
	}

	token := uuid.NewString()
	if r.guestRepo != nil {
		if err := r.guestRepo.Save(token); err != nil {
			return "", err
		}
	}
	r.guestToken = token
	return token, nil
}
