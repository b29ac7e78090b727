package service

import (
	"context"

	"github.com/venturelab/venturehub/internal/repository/mysql"

	"go.uber.org/zap"
)

// CountStore 对账需要的全部存储操作
type CountStore interface {
	ListCounts(ctx context.Context, batchSize int, lastID uint64) ([]mysql.CountRow, uint64, error)
	RealMemberCount(ctx context.Context, communityID uint64) (int64, error)
	RealPageCount(ctx context.Context, communityID uint64) (int64, error)
	FixMemberCount(ctx context.Context, communityID uint64, real int64) error
	FixPageCount(ctx context.Context, communityID uint64, real int64) error
}

// CommunityCountReconciler 派生计数对账：
// member_count / page_count 永远能从成员和关联记录重算出来，
// 计数补写丢失的增减由这里周期性修正。
type CommunityCountReconciler struct {
	repo      CountStore
	batchSize int
	log       *zap.Logger
}

func NewCommunityCountReconciler(repo CountStore, batchSize int, log *zap.Logger) *CommunityCountReconciler {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &CommunityCountReconciler{repo: repo, batchSize: batchSize, log: log}
}

// ReconcileOnce 全量扫一遍：分批游标遍历社区，发现漂移就修正并告警
func (r *CommunityCountReconciler) ReconcileOnce(ctx context.Context) {
	var lastID uint64
	for {
		rows, next, err := r.repo.ListCounts(ctx, r.batchSize, lastID)
		if err != nil {
			r.log.Warn("reconcile list failed", zap.Error(err))
			return
		}
		if len(rows) == 0 {
			return
		}
		lastID = next

		for _, row := range rows {
			r.reconcileCommunity(ctx, row)
		}
	}
}

func (r *CommunityCountReconciler) reconcileCommunity(ctx context.Context, row mysql.CountRow) {
	realMembers, err := r.repo.RealMemberCount(ctx, row.ID)
	if err != nil {
		r.log.Warn("real member count failed", zap.Uint64("community_id", row.ID), zap.Error(err))
		return
	}
	realPages, err := r.repo.RealPageCount(ctx, row.ID)
	if err != nil {
		r.log.Warn("real page count failed", zap.Uint64("community_id", row.ID), zap.Error(err))
		return
	}

	if realMembers != row.MemberCount {
		r.log.Warn("member_count drift",
			zap.Uint64("community_id", row.ID),
			zap.Int64("stored", row.MemberCount),
			zap.Int64("real", realMembers))
		if err = r.repo.FixMemberCount(ctx, row.ID, realMembers); err != nil {
			r.log.Warn("fix member_count failed", zap.Uint64("community_id", row.ID), zap.Error(err))
		}
	}
	if realPages != row.PageCount {
		r.log.Warn("page_count drift",
			zap.Uint64("community_id", row.ID),
			zap.Int64("stored", row.PageCount),
			zap.Int64("real", realPages))
		if err = r.repo.FixPageCount(ctx, row.ID, realPages); err != nil {
			r.log.Warn("fix page_count failed", zap.Uint64("community_id", row.ID), zap.Error(err))
		}
	}
}
