package service

import (
	"context"
	"errors"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/policy"
	"github.com/venturelab/venturehub/internal/repository/mysql"
)

type CommunityService struct {
	repo   *mysql.CommunityRepository
	policy Authorizer
}

func NewCommunityService(repo *mysql.CommunityRepository, authorizer Authorizer) *CommunityService {
	return &CommunityService{repo: repo, policy: authorizer}
}

// CreateCommunity 管理员建社区，创建者在同一事务进入 admins 集合
func (s *CommunityService) CreateCommunity(ctx context.Context, adminID uint64, name, desc string) (*model.Community, error) {
	if name == "" {
		return nil, errors.New("community name required")
	}

	// 先查重名再写入，唯一索引兜底并发窗口
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, errs.ErrConflict
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	community := &model.Community{
		Name:        name,
		Description: desc,
		CreatorID:   adminID,
	}
	if _, err := s.repo.Create(ctx, community); err != nil {
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) GetCommunity(ctx context.Context, id uint64) (*model.Community, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CommunityService) ListCommunities(ctx context.Context, page, size int) ([]model.Community, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.List(ctx, (page-1)*size, size)
}

// DeleteCommunity 只有该社区的管理员（或 SUPER_ADMIN）可删
func (s *CommunityService) DeleteCommunity(ctx context.Context, adminID, communityID uint64) error {
	if err := s.policy.Authorize(ctx, adminID, policy.PermManageCommunity, communityID); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, communityID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// 幂等：已不存在视为成功
			return nil
		}
		return err
	}
	return s.repo.DeleteByID(ctx, communityID)
}

// AddAdmin 把另一位管理员加入社区 admins 集合
func (s *CommunityService) AddAdmin(ctx context.Context, actorID, communityID, adminID uint64) error {
	if err := s.policy.Authorize(ctx, actorID, policy.PermManageCommunity, communityID); err != nil {
		return err
	}
	err := s.repo.AddAdmin(ctx, communityID, adminID)
	if errors.Is(err, errs.ErrConflict) {
		// 已在集合内，幂等
		return nil
	}
	return err
}
