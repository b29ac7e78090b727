package mysql

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return wrapErr(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.WithContext(ctx).First(&c, "id = ? AND status = ?", id, model.CommentVisible).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &c, nil
}

func (r *CommentRepository) ListByPage(ctx context.Context, pageID uint64, offset, limit int) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Where("page_id = ? AND status = ?", pageID, model.CommentVisible).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&list).Error
	return list, wrapErr(err)
}

// Delete 软删除
func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Update("status", model.CommentDeleted).Error)
}
