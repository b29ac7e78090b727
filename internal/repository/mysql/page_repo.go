package mysql

import (
	"context"
	"strings"

	"github.com/venturelab/venturehub/internal/model"

	"gorm.io/gorm"
)

type PageRepository struct {
	DB *gorm.DB
}

// SearchFilter 三个条件都可选，作者在 service 层先由 username 解析成 id
type SearchFilter struct {
	Tags     []string
	Title    string
	AuthorID *uint64
}

// CreateWithLink 同一事务写入页面与 PENDING 的社区关联记录
func (r *PageRepository) CreateWithLink(ctx context.Context, page *model.Page, communityID uint64) (*model.CommunityPageLink, error) {
	page.PageStatus = model.PagePending
	link := &model.CommunityPageLink{
		PageStatus: model.PagePending,
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(page).Error; err != nil {
			return err
		}
		link.CommunityID = communityID
		link.PageID = page.ID
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return link, nil
}

func (r *PageRepository) FindByID(ctx context.Context, id uint64) (*model.Page, error) {
	var page model.Page
	err := r.DB.WithContext(ctx).First(&page, id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &page, nil
}

// Delete 页面连同所有社区关联一起删除
func (r *PageRepository) Delete(ctx context.Context, id uint64) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&model.CommunityPageLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Page{}, id).Error
	})
	return wrapErr(err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 标题按字面匹配，% 和 _ 不当通配符用
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Search 只检索已通过审核的页面；标签走 JSON 集合包含，标题大小写不敏感子串，作者精确匹配
func (r *PageRepository) Search(ctx context.Context, f SearchFilter, offset, limit int) ([]model.Page, error) {
	q := r.DB.WithContext(ctx).Model(&model.Page{}).
		Where("page_status = ?", model.PageApproved)
	for _, tag := range f.Tags {
		q = q.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", tag)
	}
	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+escapeLike(strings.ToLower(f.Title))+"%")
	}
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	var list []model.Page
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, wrapErr(err)
}

func (r *PageRepository) AddLikeCount(ctx context.Context, id uint64, delta int64) error {
	return wrapErr(r.DB.WithContext(ctx).Model(&model.Page{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("GREATEST(0, like_count + ?)", delta)).Error)
}
