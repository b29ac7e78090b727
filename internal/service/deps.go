package service

import (
	"context"

	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/policy"
	"github.com/venturelab/venturehub/internal/repository/mysql"
)

// 服务层依赖全部走接口注入，测试用假实现替换

type (
	PageSearchFilter = mysql.SearchFilter
	PendingPage      = mysql.PendingPage
)

type MembershipStore interface {
	CreatePending(ctx context.Context, m *model.CommunityMember) error
	Get(ctx context.Context, communityID, userID uint64) (*model.CommunityMember, error)
	ApprovePending(ctx context.Context, communityID, userID uint64) (int64, error)
	DeleteWithStatus(ctx context.Context, communityID, userID uint64, status string) (int64, error)
	ListByCommunity(ctx context.Context, communityID uint64, status string, offset, limit int) ([]model.CommunityMember, error)
	ListUserCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

type CommunityStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Community, error)
	AddMemberCount(ctx context.Context, id uint64, delta int64) error
	AddPageCount(ctx context.Context, id uint64, delta int64) error
	ListAdminIDs(ctx context.Context, communityID uint64) ([]uint64, error)
}

type PageStore interface {
	CreateWithLink(ctx context.Context, page *model.Page, communityID uint64) (*model.CommunityPageLink, error)
	FindByID(ctx context.Context, id uint64) (*model.Page, error)
	Delete(ctx context.Context, id uint64) error
	Search(ctx context.Context, f PageSearchFilter, offset, limit int) ([]model.Page, error)
}

type PageLinkStore interface {
	Get(ctx context.Context, communityID, pageID uint64) (*model.CommunityPageLink, error)
	ApprovePending(ctx context.Context, communityID, pageID, adminID uint64) (int64, error)
	RejectPending(ctx context.Context, communityID, pageID, adminID uint64) (int64, error)
	DeleteWithStatus(ctx context.Context, communityID, pageID uint64, status string) (int64, error)
	ListPending(ctx context.Context, communityID uint64, offset, limit int) ([]PendingPage, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// Authorizer 权限裁决，拒绝时返回 errs.ErrUnauthorized
type Authorizer interface {
	Authorize(ctx context.Context, adminID uint64, perm policy.Permission, communityID uint64) error
}

// Notifier 站内信/邮件通知，全部尽力而为，失败只记日志
type Notifier interface {
	MembershipRequested(ctx context.Context, communityID, userID uint64)
	MembershipApproved(ctx context.Context, communityID, userID uint64)
	MembershipRemoved(ctx context.Context, communityID, userID uint64)
	PageSubmitted(ctx context.Context, communityID uint64, page *model.Page)
	PageApproved(ctx context.Context, communityID uint64, page *model.Page)
	PageRejected(ctx context.Context, communityID uint64, page *model.Page)
}
