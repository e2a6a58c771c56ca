package ui

import (
	"errors"

	"github.com/martcart-next/internal/http/response"
	"github.com/martcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateSessionRequest 登录通知请求
// token 来自认证协作方，默认按不透明凭据处理
type CreateSessionRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Token      string `json:"token"`
}

// SetZoneRequest 配送区域请求（来自地址协作方）
type SetZoneRequest struct {
	Zone int `json:"zone" binding:"required"`
}

// CreateSession 登录通知：切换为用户身份并触发迁移同步
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "error.bad_request")
		return
	}
	migrated, err := h.SessionService.Login(c.Request.Context(), req.CustomerID, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerIDRequired):
			response.Error(c, response.CodeBadRequest, "error.customer_id_required")
		case errors.Is(err, service.ErrCredentialInvalid):
			response.Error(c, response.CodeUnauthorized, "error.credential_invalid")
		default:
			response.Error(c, response.CodeInternal, "error.session_create_failed")
		}
		return
	}
	response.Success(c, gin.H{"migrated": migrated})
}

// DeleteSession 登出：清除用户身份并重置购物车
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.SessionService.Logout(); err != nil {
		response.Error(c, response.CodeInternal, "error.session_delete_failed")
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// SetZone 更新配送区域
func (h *Handler) SetZone(c *gin.Context) {
	var req SetZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "error.bad_request")
		return
	}
	h.SessionService.SetZone(req.Zone)
	response.Success(c, gin.H{"updated": true})
}
