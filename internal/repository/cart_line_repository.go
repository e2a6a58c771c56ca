package repository

import (
	"github.com/martcart-next/internal/models"

	"gorm.io/gorm"
)

// CartLineRepository 购物车快照持久化接口
type CartLineRepository interface {
	Load() ([]models.CartLine, error)
	SaveSnapshot(lines []models.CartLine) error
	WithTx(tx *gorm.DB) *GormCartLineRepository
}

// GormCartLineRepository GORM 实现
type GormCartLineRepository struct {
	db *gorm.DB
}

// NewCartLineRepository 创建购物车行仓库
func NewCartLineRepository(db *gorm.DB) *GormCartLineRepository {
	return &GormCartLineRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartLineRepository) WithTx(tx *gorm.DB) *GormCartLineRepository {
	if tx == nil {
		return r
	}
	return &GormCartLineRepository{db: tx}
}

// Load 按插入顺序读取全部购物车行
func (r *GormCartLineRepository) Load() ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.db.Order("position asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// SaveSnapshot 全量覆盖购物车快照
// 每次本地变更都落盘，重启后可恢复
func (r *GormCartLineRepository) SaveSnapshot(lines []models.CartLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		records := make([]models.CartLine, len(lines))
		for i, line := range lines {
			line.ID = 0
			line.Position = i
			records[i] = line
		}
		return tx.Create(&records).Error
	})
}
