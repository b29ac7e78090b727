package mysql

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

func (r *OutboxRepository) Insert(ctx context.Context, ob *model.ModerationOutbox) error {
	return wrapErr(r.DB.WithContext(ctx).Create(ob).Error)
}

// List 按批量大小查询待投递事件，失败过的一并重试
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.ModerationOutbox, error) {
	var list []model.ModerationOutbox
	if err := r.DB.WithContext(ctx).
		Where("status IN ?", []int{0, 2}).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, wrapErr(err)
	}
	return list, nil
}

// MarkFailed 投递失败记录重试
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.ModerationOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error)
}

// MarkSent 投递成功更新
func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.ModerationOutbox{}).Where("id = ?", id).
		Update("status", 1).Error)
}
