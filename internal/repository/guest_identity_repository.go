package repository

import (
	"errors"

	"github.com/martcart-next/internal/models"

	"gorm.io/gorm"
)

// GuestIdentityRepository 游客身份持久化接口
type GuestIdentityRepository interface {
	Get() (*models.GuestIdentity, error)
	Save(token string) error
	Delete() error
}

// GormGuestIdentityRepository GORM 实现
type GormGuestIdentityRepository struct {
	db *gorm.DB
}

// NewGuestIdentityRepository 创建游客身份仓库
func NewGuestIdentityRepository(db *gorm.DB) *GormGuestIdentityRepository {
	return &GormGuestIdentityRepository{db: db}
}

// Get 读取当前游客身份，不存在时返回 nil
func (r *GormGuestIdentityRepository) Get() (*models.GuestIdentity, error) {
	var identity models.GuestIdentity
	err := r.db.Order("id asc").First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// Save 写入游客身份（至多保留一条记录）
func (r *GormGuestIdentityRepository) Save(token string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.GuestIdentity{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.GuestIdentity{Token: token}).Error
	})
}

// Delete 删除游客身份（迁移成功后调用）
func (r *GormGuestIdentityRepository) Delete() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.GuestIdentity{}).Error
}
