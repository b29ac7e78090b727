package service

import (
	"context"
	"testing"
	"time"

	"github.com/venturelab/venturehub/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMembershipHarness(t *testing.T, communityIDs ...uint64) (*MembershipService, *fakeMembers, *fakeCommunities, *fakeAuthorizer, *captureSink) {
	t.Helper()
	members := newFakeMembers()
	communities := newFakeCommunities(communityIDs...)
	auth := &fakeAuthorizer{}
	sink := &captureSink{}
	svc := NewMembershipService(members, communities, auth, sink, nil, zap.NewNop(), time.Second, 1)
	return svc, members, communities, auth, sink
}

func TestRequestJoinCreatesPendingRecord(t *testing.T) {
	svc, members, _, _, _ := newMembershipHarness(t, 10)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))

	m, err := members.Get(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", m.MemberStatus)
}

func TestRequestJoinUnknownCommunity(t *testing.T) {
	svc, _, _, _, _ := newMembershipHarness(t, 10)

	err := svc.RequestJoin(context.Background(), 1, 99)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRequestJoinTwiceIsConflict(t *testing.T) {
	svc, _, _, _, _ := newMembershipHarness(t, 10)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	err := svc.RequestJoin(context.Background(), 1, 10)
	assert.ErrorIs(t, err, errs.ErrAlreadyMember)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestRequestJoinWhileApprovedIsConflict(t *testing.T) {
	svc, members, _, _, _ := newMembershipHarness(t, 10)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	_, err := members.ApprovePending(context.Background(), 10, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RequestJoin(context.Background(), 1, 10), errs.ErrAlreadyMember)
}

func TestApproveFlipsStatusAndIncrementsCount(t *testing.T) {
	svc, members, communities, _, _ := newMembershipHarness(t, 10)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))

	m, err := members.Get(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", m.MemberStatus)
	assert.Equal(t, int64(1), communities.memberCount(10))
}

func TestApproveWithoutPendingRequest(t *testing.T) {
	svc, _, communities, _, _ := newMembershipHarness(t, 10)

	err := svc.Approve(context.Background(), 100, 10, 1)
	assert.ErrorIs(t, err, errs.ErrNoPendingRequest)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, int64(0), communities.memberCount(10))
}

// 两个并发审批只有条件更新赢家生效，计数只加一次
func TestApproveTwiceCountsOnce(t *testing.T) {
	svc, _, communities, _, _ := newMembershipHarness(t, 10)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))

	err := svc.Approve(context.Background(), 101, 10, 1)
	assert.ErrorIs(t, err, errs.ErrNoPendingRequest)
	assert.Equal(t, int64(1), communities.memberCount(10))
}

func TestApproveDeniedLeavesStateUntouched(t *testing.T) {
	svc, members, communities, auth, _ := newMembershipHarness(t, 10)
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	auth.denied = true

	err := svc.Approve(context.Background(), 100, 10, 1)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	m, gerr := members.Get(context.Background(), 10, 1)
	require.NoError(t, gerr)
	assert.Equal(t, "PENDING", m.MemberStatus)
	assert.Equal(t, int64(0), communities.memberCount(10))
}

// 计数补写失败不回滚状态翻转，差异留给对账任务
func TestApproveSurvivesCounterWriteFailure(t *testing.T) {
	svc, members, communities, _, _ := newMembershipHarness(t, 10)
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	communities.memberCountErrs = 10

	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))

	m, err := members.Get(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", m.MemberStatus)
	assert.Equal(t, int64(0), communities.memberCount(10))
}

func TestRejectDeletesPendingOnly(t *testing.T) {
	svc, members, communities, _, _ := newMembershipHarness(t, 10)
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))

	require.NoError(t, svc.Reject(context.Background(), 100, 10, 1))
	_, err := members.Get(context.Background(), 10, 1)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, int64(0), communities.memberCount(10))

	// 再拒一次已经无事可做
	assert.ErrorIs(t, svc.Reject(context.Background(), 100, 10, 1), errs.ErrNoPendingRequest)
}

func TestRejectApprovedMemberFails(t *testing.T) {
	svc, _, _, _, _ := newMembershipHarness(t, 10)
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))

	assert.ErrorIs(t, svc.Reject(context.Background(), 100, 10, 1), errs.ErrNoPendingRequest)
}

func TestRemoveApprovedMemberDecrementsCount(t *testing.T) {
	svc, members, communities, _, _ := newMembershipHarness(t, 10)
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))

	require.NoError(t, svc.Remove(context.Background(), 100, 10, 1, true))
	_, err := members.Get(context.Background(), 10, 1)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, int64(0), communities.memberCount(10))
}

func TestSelfLeaveNeedsNoPermission(t *testing.T) {
	svc, _, communities, auth, _ := newMembershipHarness(t, 10)
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))
	auth.denied = true

	require.NoError(t, svc.Remove(context.Background(), 1, 10, 1, false))
	assert.Equal(t, int64(0), communities.memberCount(10))
}

func TestRemoveOtherUserWithoutAdminFlag(t *testing.T) {
	svc, _, _, _, _ := newMembershipHarness(t, 10)
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))

	assert.ErrorIs(t, svc.Remove(context.Background(), 2, 10, 1, false), errs.ErrUnauthorized)
}

func TestRemoveDistinguishesMissingFromPending(t *testing.T) {
	svc, _, _, _, _ := newMembershipHarness(t, 10)

	assert.ErrorIs(t, svc.Remove(context.Background(), 100, 10, 1, true), errs.ErrNotMember)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	assert.ErrorIs(t, svc.Remove(context.Background(), 100, 10, 1, true), errs.ErrNotApproved)
}

func TestCheckMembershipStates(t *testing.T) {
	svc, _, _, _, _ := newMembershipHarness(t, 10)

	assert.ErrorIs(t, svc.CheckMembership(context.Background(), 1, 10), errs.ErrNotMember)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	assert.ErrorIs(t, svc.CheckMembership(context.Background(), 1, 10), errs.ErrNotApproved)

	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))
	assert.NoError(t, svc.CheckMembership(context.Background(), 1, 10))
}

func TestListUserCommunitiesOnlyApproved(t *testing.T) {
	svc, _, _, _, _ := newMembershipHarness(t, 10, 20)
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	require.NoError(t, svc.RequestJoin(context.Background(), 1, 20))
	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))

	ids, err := svc.ListUserCommunities(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10}, ids)
}

// 完整生命周期的计数序列：0 -> 1 -> 0
func TestMemberCountSequence(t *testing.T) {
	svc, _, communities, _, _ := newMembershipHarness(t, 10)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))
	assert.Equal(t, int64(0), communities.memberCount(10))

	require.NoError(t, svc.Approve(context.Background(), 100, 10, 1))
	assert.Equal(t, int64(1), communities.memberCount(10))

	require.NoError(t, svc.Remove(context.Background(), 1, 10, 1, false))
	assert.Equal(t, int64(0), communities.memberCount(10))
}

// 请求上下文已取消时补写仍要走独立超时重试，首次瞬时失败后第二次落库
func TestApproveCounterRetriesPastExpiredRequestContext(t *testing.T) {
	members := newFakeMembers()
	communities := newFakeCommunities(10)
	svc := NewMembershipService(members, communities, &fakeAuthorizer{}, &captureSink{}, nil, zap.NewNop(), time.Second, 3)

	require.NoError(t, svc.RequestJoin(context.Background(), 1, 10))

	communities.memberCountErrs = 1
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, svc.Approve(ctx, 100, 10, 1))
	assert.Equal(t, int64(1), communities.memberCount(10))
}
