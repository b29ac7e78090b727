package policy

import (
	"context"
	"errors"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
)

type Permission string

const (
	PermApproveUser     Permission = "APPROVE_USER"
	PermRemoveUser      Permission = "REMOVE_USER_FROM_COMMUNITY"
	PermApprovePage     Permission = "APPROVE_PAGE"
	PermRemovePage      Permission = "REMOVE_PAGE"
	PermManageCommunity Permission = "MANAGE_COMMUNITY"
)

// AllPermissions 建 SUPER_ADMIN 之外的管理员时可按需取子集
var AllPermissions = []Permission{
	PermApproveUser,
	PermRemoveUser,
	PermApprovePage,
	PermRemovePage,
	PermManageCommunity,
}

func ValidPermission(p Permission) bool {
	for _, v := range AllPermissions {
		if v == p {
			return true
		}
	}
	return false
}

type AdminStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Admin, error)
}

type CommunityAdminStore interface {
	IsCommunityAdmin(ctx context.Context, communityID, adminID uint64) (bool, error)
}

// Policy 集中式权限裁决：(actor, permission, resource) -> 允许/拒绝
type Policy struct {
	admins      AdminStore
	communities CommunityAdminStore
}

func New(admins AdminStore, communities CommunityAdminStore) *Policy {
	return &Policy{admins: admins, communities: communities}
}

// Check 规则：SUPER_ADMIN 全通过；ADMIN 必须同时是该社区管理员且持有对应权限
func (p *Policy) Check(ctx context.Context, adminID uint64, perm Permission, communityID uint64) (bool, error) {
	admin, err := p.admins.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if admin.IsSuperAdmin() {
		return true, nil
	}
	if !admin.Permissions.Contains(string(perm)) {
		return false, nil
	}
	return p.communities.IsCommunityAdmin(ctx, communityID, adminID)
}

// Authorize Check 的错误化包装，拒绝时返回 Unauthorized
func (p *Policy) Authorize(ctx context.Context, adminID uint64, perm Permission, communityID uint64) error {
	ok, err := p.Check(ctx, adminID, perm, communityID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrUnauthorized
	}
	return nil
}
