package mysql

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type CommunityPageLinkRepository struct {
	DB *gorm.DB
}

// PendingPage 待审列表返回页面本体加关联记录
type PendingPage struct {
	Page model.Page              `json:"page"`
	Link model.CommunityPageLink `json:"link"`
}

func (r *CommunityPageLinkRepository) Get(ctx context.Context, communityID, pageID uint64) (*model.CommunityPageLink, error) {
	var link model.CommunityPageLink
	err := r.DB.WithContext(ctx).
		Where("community_id = ? AND page_id = ?", communityID, pageID).
		First(&link).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &link, nil
}

// ApprovePending 条件翻转 PENDING -> APPROVED 并留痕；同事务镜像 page_status。
// 返回影响行数，0 表示没有待审记录（或已被并发处理）。
func (r *CommunityPageLinkRepository) ApprovePending(ctx context.Context, communityID, pageID, adminID uint64) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CommunityPageLink{}).
			Where("community_id = ? AND page_id = ? AND page_status = ?",
				communityID, pageID, model.PagePending).
			Updates(map[string]any{
				"page_status": model.PageApproved,
				"approved_by": adminID,
			})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Model(&model.Page{}).
			Where("id = ?", pageID).
			Updates(map[string]any{
				"page_status": model.PageApproved,
				"reviewed_by": adminID,
			}).Error
	})
	return affected, wrapErr(err)
}

// RejectPending 条件翻转 PENDING -> REJECTED，不动计数
func (r *CommunityPageLinkRepository) RejectPending(ctx context.Context, communityID, pageID, adminID uint64) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CommunityPageLink{}).
			Where("community_id = ? AND page_id = ? AND page_status = ?",
				communityID, pageID, model.PagePending).
			Updates(map[string]any{
				"page_status": model.PageRejected,
				"rejected_by": adminID,
			})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Model(&model.Page{}).
			Where("id = ?", pageID).
			Updates(map[string]any{
				"page_status": model.PageRejected,
				"reviewed_by": adminID,
			}).Error
	})
	return affected, wrapErr(err)
}

// DeleteWithStatus 按观察到的状态条件删除，避免并发状态翻转后误删
func (r *CommunityPageLinkRepository) DeleteWithStatus(ctx context.Context, communityID, pageID uint64, status string) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("community_id = ? AND page_id = ? AND page_status = ?", communityID, pageID, status).
		Delete(&model.CommunityPageLink{})
	return tx.RowsAffected, wrapErr(tx.Error)
}

func (r *CommunityPageLinkRepository) ListPending(ctx context.Context, communityID uint64, offset, limit int) ([]PendingPage, error) {
	var links []model.CommunityPageLink
	err := r.DB.WithContext(ctx).
		Where("community_id = ? AND page_status = ?", communityID, model.PagePending).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&links).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	if len(links) == 0 {
		return nil, nil
	}

	ids := make([]uint64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.PageID)
	}
	var pages []model.Page
	if err = r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&pages).Error; err != nil {
		return nil, wrapErr(err)
	}
	byID := make(map[uint64]model.Page, len(pages))
	for _, p := range pages {
		byID[p.ID] = p
	}

	out := make([]PendingPage, 0, len(links))
	for _, l := range links {
		out = append(out, PendingPage{Page: byID[l.PageID], Link: l})
	}
	return out, nil
}

func (r *CommunityPageLinkRepository) CountApproved(ctx context.Context, communityID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.CommunityPageLink{}).
		Where("community_id = ? AND page_status = ?", communityID, model.PageApproved).
		Count(&n).Error
	return n, wrapErr(err)
}
