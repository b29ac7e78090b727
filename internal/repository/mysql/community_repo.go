package mysql

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// Create 同一事务写入社区与创建者管理员记录，保证 admins 集合非空
func (r *CommunityRepository) Create(ctx context.Context, c *model.Community) (*model.Community, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(&model.CommunityAdmin{
			CommunityID: c.ID,
			AdminID:     c.CreatorID,
		}).Error
	})
	return c, wrapErr(err)
}

func (r *CommunityRepository) FindByID(ctx context.Context, id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).First(&community, id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &community, nil
}

func (r *CommunityRepository) FindByName(ctx context.Context, name string) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&community).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &community, nil
}

func (r *CommunityRepository) List(ctx context.Context, offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.WithContext(ctx).Order("id desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, wrapErr(err)
}

// DeleteByID 幂等硬删除，连带管理员、成员与页面关联记录
func (r *CommunityRepository) DeleteByID(ctx context.Context, id uint64) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Community{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", id).Delete(&model.CommunityAdmin{}).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", id).Delete(&model.CommunityMember{}).Error; err != nil {
			return err
		}
		return tx.Where("community_id = ?", id).Delete(&model.CommunityPageLink{}).Error
	})
	return wrapErr(err)
}

// AddMemberCount 计数增减，GREATEST 防负
func (r *CommunityRepository) AddMemberCount(ctx context.Context, id uint64, delta int64) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.Community{}).
		Where("id = ?", id).
		UpdateColumn("member_count", gorm.Expr("GREATEST(0, member_count + ?)", delta)).Error)
}

func (r *CommunityRepository) AddPageCount(ctx context.Context, id uint64, delta int64) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.Community{}).
		Where("id = ?", id).
		UpdateColumn("page_count", gorm.Expr("GREATEST(0, page_count + ?)", delta)).Error)
}

func (r *CommunityRepository) ListAdminIDs(ctx context.Context, communityID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.CommunityAdmin{}).
		Where("community_id = ?", communityID).
		Pluck("admin_id", &ids).Error
	return ids, wrapErr(err)
}

func (r *CommunityRepository) IsCommunityAdmin(ctx context.Context, communityID, adminID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.CommunityAdmin{}).
		Where("community_id = ? AND admin_id = ?", communityID, adminID).
		Count(&n).Error
	return n > 0, wrapErr(err)
}

// AddAdmin 幂等（唯一键冲突视为已存在）
func (r *CommunityRepository) AddAdmin(ctx context.Context, communityID, adminID uint64) error {
	return wrapErr(r.DB.WithContext(ctx).Create(&model.CommunityAdmin{
		CommunityID: communityID,
		AdminID:     adminID,
	}).Error)
}
