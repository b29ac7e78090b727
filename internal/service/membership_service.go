package service

import (
	"context"
	"errors"
	"time"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/policy"

	"go.uber.org/zap"
)

// MembershipService 成员生命周期状态机：
// NONE -> PENDING -> APPROVED；PENDING/APPROVED 均可被删除（拒绝/移除）。
// 状态翻转用条件更新做线性化点，派生计数随后补写，失败交给对账任务。
type MembershipService struct {
	members     MembershipStore
	communities CommunityStore
	policy      Authorizer
	sink        EventSink
	notifier    Notifier
	log         *zap.Logger

	storeTimeout time.Duration
	counterRetry int
}

func NewMembershipService(
	members MembershipStore,
	communities CommunityStore,
	authorizer Authorizer,
	sink EventSink,
	notifier Notifier,
	log *zap.Logger,
	storeTimeout time.Duration,
	counterRetry int,
) *MembershipService {
	return &MembershipService{
		members:      members,
		communities:  communities,
		policy:       authorizer,
		sink:         sink,
		notifier:     notifier,
		log:          log,
		storeTimeout: storeTimeout,
		counterRetry: counterRetry,
	}
}

// RequestJoin 申请加入：任何状态的已有记录都算已是成员。
// 读检查只是快速失败，并发下靠唯一键兜底。
func (s *MembershipService) RequestJoin(ctx context.Context, userID, communityID uint64) error {
	if userID == 0 || communityID == 0 {
		return errs.ErrNotFound
	}

	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	if _, err := s.communities.FindByID(sctx, communityID); err != nil {
		return err
	}

	if _, err := s.members.Get(sctx, communityID, userID); err == nil {
		return errs.ErrAlreadyMember
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	err := s.members.CreatePending(sctx, &model.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		Role:        model.MemberRoleDefault,
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return errs.ErrAlreadyMember
		}
		return err
	}

	go publishEvent(s.sink, s.log, NewEvent(EventMembershipRequested, communityID, userID, userID))
	if s.notifier != nil {
		s.notifier.MembershipRequested(ctx, communityID, userID)
	}
	return nil
}

// Approve 审批入会。条件更新 PENDING -> APPROVED 是线性化点：
// 两个并发审批至多一个生效，member_count 也只加一次。
func (s *MembershipService) Approve(ctx context.Context, adminID, communityID, userID uint64) error {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	if err := s.policy.Authorize(sctx, adminID, policy.PermApproveUser, communityID); err != nil {
		return err
	}

	affected, err := s.members.ApprovePending(sctx, communityID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNoPendingRequest
	}

	// 翻转已生效，计数补写失败不回滚
	retryCounter(sctx, s.log, s.counterRetry, s.storeTimeout, "member_count", communityID, func(c context.Context) error {
		return s.communities.AddMemberCount(c, communityID, +1)
	})

	go publishEvent(s.sink, s.log, NewEvent(EventMembershipApproved, communityID, adminID, userID))
	if s.notifier != nil {
		s.notifier.MembershipApproved(ctx, communityID, userID)
	}
	return nil
}

// Reject 拒绝申请：直接删除 PENDING 记录，从未计数故不动计数
func (s *MembershipService) Reject(ctx context.Context, adminID, communityID, userID uint64) error {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	if err := s.policy.Authorize(sctx, adminID, policy.PermApproveUser, communityID); err != nil {
		return err
	}

	affected, err := s.members.DeleteWithStatus(sctx, communityID, userID, model.MemberPending)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNoPendingRequest
	}

	go publishEvent(s.sink, s.log, NewEvent(EventMembershipRejected, communityID, adminID, userID))
	return nil
}

// Remove 移除成员：本人随时可退出，管理员需要移除权限
func (s *MembershipService) Remove(ctx context.Context, actorID, communityID, userID uint64, isAdmin bool) error {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	if !isAdmin && actorID != userID {
		return errs.ErrUnauthorized
	}
	if isAdmin {
		if err := s.policy.Authorize(sctx, actorID, policy.PermRemoveUser, communityID); err != nil {
			return err
		}
	}

	affected, err := s.members.DeleteWithStatus(sctx, communityID, userID, model.MemberApproved)
	if err != nil {
		return err
	}
	if affected == 0 {
		// 区分：压根没有记录，还是还在待审
		if _, gerr := s.members.Get(sctx, communityID, userID); gerr != nil {
			if errors.Is(gerr, errs.ErrNotFound) {
				return errs.ErrNotMember
			}
			return gerr
		}
		return errs.ErrNotApproved
	}

	retryCounter(sctx, s.log, s.counterRetry, s.storeTimeout, "member_count", communityID, func(c context.Context) error {
		return s.communities.AddMemberCount(c, communityID, -1)
	})

	go publishEvent(s.sink, s.log, NewEvent(EventMembershipRemoved, communityID, actorID, userID))
	if s.notifier != nil {
		s.notifier.MembershipRemoved(ctx, communityID, userID)
	}
	return nil
}

// CheckMembership 内容工作流的前置闸门：没有记录返回 NotMember，待审返回 NotApproved
func (s *MembershipService) CheckMembership(ctx context.Context, userID, communityID uint64) error {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	m, err := s.members.Get(sctx, communityID, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotMember
		}
		return err
	}
	if m.MemberStatus != model.MemberApproved {
		return errs.ErrNotApproved
	}
	return nil
}

func (s *MembershipService) ListMembers(ctx context.Context, communityID uint64, status string, page, size int) ([]model.CommunityMember, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return s.members.ListByCommunity(sctx, communityID, status, (page-1)*size, size)
}

// ListUserCommunities 用户的社区集合，由 APPROVED 成员记录推导
func (s *MembershipService) ListUserCommunities(ctx context.Context, userID uint64) ([]uint64, error) {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return s.members.ListUserCommunityIDs(sctx, userID)
}
