package mysql

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return wrapErr(r.DB.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID uint64, kind string, offset, limit int) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.WithContext(ctx).
		Where("recipient_id = ? AND recipient_kind = ?", recipientID, kind).
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&list).Error
	return list, wrapErr(err)
}

// MarkRead 只允许收件人本人标记
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID uint64, kind string) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ? AND recipient_kind = ?", id, recipientID, kind).
		Update("is_read", true)
	return tx.RowsAffected, wrapErr(tx.Error)
}
