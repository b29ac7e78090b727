package mysql

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type CommunityCountRepo struct {
	DB *gorm.DB
}

// CountRow 对账批次里的一行：社区当前存的两个派生计数
type CountRow struct {
	ID          uint64
	MemberCount int64
	PageCount   int64
}

// ListCounts 游标分批拉取社区计数
func (r *CommunityCountRepo) ListCounts(ctx context.Context, batchSize int, lastID uint64) ([]CountRow, uint64, error) {
	var list []CountRow
	if err := r.DB.WithContext(ctx).Model(&model.Community{}).
		Select("id", "member_count", "page_count").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, wrapErr(err)
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealMemberCount 真实成员数，和成员仓储共用同一条 APPROVED 计数查询
func (r *CommunityCountRepo) RealMemberCount(ctx context.Context, communityID uint64) (int64, error) {
	return (&CommunityMemberRepository{DB: r.DB}).CountApproved(ctx, communityID)
}

// RealPageCount 真实页面数，同上走关联仓储的 APPROVED 计数
func (r *CommunityCountRepo) RealPageCount(ctx context.Context, communityID uint64) (int64, error) {
	return (&CommunityPageLinkRepository{DB: r.DB}).CountApproved(ctx, communityID)
}

func (r *CommunityCountRepo) FixMemberCount(ctx context.Context, communityID uint64, real int64) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.Community{}).Where("id = ?", communityID).
		UpdateColumn("member_count", real).Error)
}

func (r *CommunityCountRepo) FixPageCount(ctx context.Context, communityID uint64, real int64) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.Community{}).Where("id = ?", communityID).
		UpdateColumn("page_count", real).Error)
}
