package mysql

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// CreatePending 申请加入：唯一键 (community_id, user_id) 兜底并发重复申请
func (r *CommunityMemberRepository) CreatePending(ctx context.Context, m *model.CommunityMember) error {
	m.MemberStatus = model.MemberPending
	return wrapErr(r.DB.WithContext(ctx).Create(m).Error)
}

func (r *CommunityMemberRepository) Get(ctx context.Context, communityID, userID uint64) (*model.CommunityMember, error) {
	var m model.CommunityMember
	err := r.DB.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&m).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &m, nil
}

// ApprovePending 条件更新：PENDING -> APPROVED，返回影响行数。
// 状态翻转即线性化点，两个并发审批至多一个拿到 affected=1。
func (r *CommunityMemberRepository) ApprovePending(ctx context.Context, communityID, userID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND member_status = ?",
			communityID, userID, model.MemberPending).
		Update("member_status", model.MemberApproved)
	return tx.RowsAffected, wrapErr(tx.Error)
}

// DeleteWithStatus 按当前状态条件删除（拒绝删 PENDING，移除删 APPROVED）
func (r *CommunityMemberRepository) DeleteWithStatus(ctx context.Context, communityID, userID uint64, status string) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("community_id = ? AND user_id = ? AND member_status = ?", communityID, userID, status).
		Delete(&model.CommunityMember{})
	return tx.RowsAffected, wrapErr(tx.Error)
}

func (r *CommunityMemberRepository) ListByCommunity(ctx context.Context, communityID uint64, status string, offset, limit int) ([]model.CommunityMember, error) {
	var list []model.CommunityMember
	q := r.DB.WithContext(ctx).Where("community_id = ?", communityID)
	if status != "" {
		q = q.Where("member_status = ?", status)
	}
	err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, wrapErr(err)
}

// ListUserCommunityIDs 用户的社区集合：从已批准的成员记录推导
func (r *CommunityMemberRepository) ListUserCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("user_id = ? AND member_status = ?", userID, model.MemberApproved).
		Order("community_id ASC").
		Pluck("community_id", &ids).Error
	return ids, wrapErr(err)
}

func (r *CommunityMemberRepository) CountApproved(ctx context.Context, communityID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("community_id = ? AND member_status = ?", communityID, model.MemberApproved).
		Count(&n).Error
	return n, wrapErr(err)
}
