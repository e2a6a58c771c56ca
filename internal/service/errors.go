package service

import "errors"

var (
	// ErrLineInvalid 购物车行参数非法
	ErrLineInvalid = errors.New("cart line invalid")
	// ErrCustomerIDRequired 登录通知缺少用户 ID
	ErrCustomerIDRequired = errors.New("customer id required")
	// ErrCredentialInvalid 登录凭据校验失败
	ErrCredentialInvalid = errors.New("session credential invalid")
	// ErrSyncUnavailable 同步引擎未配置远端服务
	ErrSyncUnavailable = errors.New("sync unavailable")
)
