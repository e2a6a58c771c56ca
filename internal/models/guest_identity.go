package models

import (
	"time"
)

// GuestIdentity 游客身份记录
// 首次懒创建后保持稳定，直到迁移同步成功才被废弃
type GuestIdentity struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"` // 匿名购物车句柄
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName 指定表名
func (GuestIdentity) TableName() string {
	return "guest_identities"
}
