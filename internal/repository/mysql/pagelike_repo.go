package mysql

import (
	"context"
	"errors"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type PageLikeRepository struct {
	DB *gorm.DB
}

// Like 幂等点赞：已存在则不报错也不重复计数
func (r *PageLikeRepository) Like(ctx context.Context, userID, pageID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pl model.PageLike
		err := tx.Where("user_id = ? AND page_id = ?", userID, pageID).First(&pl).Error
		if err == nil {
			// 已存在，幂等
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err = tx.Create(&model.PageLike{UserID: userID, PageID: pageID}).Error; err != nil {
			return err
		}
		changed = true
		return tx.Model(&model.Page{}).
			Where("id = ?", pageID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	return changed, wrapErr(err)
}

func (r *PageLikeRepository) Unlike(ctx context.Context, userID, pageID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND page_id = ?", userID, pageID).
			Delete(&model.PageLike{})
		if res.Error != nil {
			return res.Error
		}
		// 未删除任何行 -> 幂等
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		// 计数-1，防止负数由对账兜底
		return tx.Model(&model.Page{}).
			Where("id = ?", pageID).
			UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
	})
	return changed, wrapErr(err)
}

func (r *PageLikeRepository) IsLiked(ctx context.Context, userID, pageID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.PageLike{}).
		Where("user_id = ? AND page_id = ?", userID, pageID).
		Count(&count).Error
	return count > 0, wrapErr(err)
}

func (r *PageLikeRepository) GetLikeCount(ctx context.Context, pageID uint64) (int64, error) {
	var p model.Page
	err := r.DB.WithContext(ctx).Select("id", "like_count").First(&p, pageID).Error
	if err != nil {
		return 0, wrapErr(err)
	}
	return p.LikeCount, nil
}
