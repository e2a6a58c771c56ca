package provider

import (
	"time"

	"github.com/martcart-next/internal/config"
	"github.com/martcart-next/internal/logger"
	"github.com/martcart-next/internal/models"
	"github.com/martcart-next/internal/remotecart"
	"github.com/martcart-next/internal/repository"
	"github.com/martcart-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	CartLineRepo      repository.CartLineRepository
	GuestIdentityRepo repository.GuestIdentityRepository

	// Services
	CartStore        *service.CartStore
	IdentityResolver *service.IdentityResolver
	ExpressNotice    *service.ExpressNotice
	SyncEngine       *service.SyncEngine
	SessionService   *service.SessionService
}

// NewContainer 构建依赖容器
// 远端服务未配置时客户端为 nil，同步引擎会返回明确错误
func NewContainer(cfg *config.Config) *Container {
	cartLineRepo := repository.NewCartLineRepository(models.DB)
	guestIdentityRepo := repository.NewGuestIdentityRepository(models.DB)

	cartStore := service.NewCartStore(cartLineRepo)
	if err := cartStore.Hydrate(); err != nil {
		logger.Warnw("cart_store_hydrate_failed", "error", err)
	}

	identityResolver := service.NewIdentityResolver(guestIdentityRepo)
	expressNotice := service.NewExpressNotice()

	var remoteClient *remotecart.Client
	if cfg.Remote.BaseURL != "" {
		client, err := remotecart.NewClient(remotecart.Config{
			BaseURL:      cfg.Remote.BaseURL,
			GuestPath:    cfg.Remote.GuestPath,
			CustomerPath: cfg.Remote.CustomerPath,
			Timeout:      time.Duration(cfg.Remote.TimeoutMS) * time.Millisecond,
		})
		if err != nil {
			logger.Errorw("remotecart_client_init_failed", "error", err)
		} else {
			remoteClient = client
		}
	} else {
		logger.Warnw("remotecart_base_url_missing", "effect", "sync_disabled")
	}

	syncEngine := service.NewSyncEngine(
		cartStore,
		identityResolver,
		expressNotice,
		remoteClient,
		time.Duration(cfg.Sync.DebounceMS)*time.Millisecond,
	)
	sessionService := service.NewSessionService(
		cfg.SessionJWT.Secret,
		syncEngine,
		cartStore,
		identityResolver,
		expressNotice,
	)

	return &Container{
		Config:            cfg,
		CartLineRepo:      cartLineRepo,
		GuestIdentityRepo: guestIdentityRepo,
		CartStore:         cartStore,
		IdentityResolver:  identityResolver,
		ExpressNotice:     expressNotice,
		SyncEngine:        syncEngine,
		SessionService:    sessionService,
	}
}
