package service

import (
	"context"
	"fmt"
	"time"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/repository/mysql"
	"github.com/venturelab/venturehub/internal/repository/redis"
)

type PageLikeService struct {
	repo      *mysql.PageLikeRepository
	likeCache *redis.LikeCacheRepository
	lock      *redis.DistLock
}

func NewPageLikeService(repo *mysql.PageLikeRepository, likeCache *redis.LikeCacheRepository, lock *redis.DistLock) *PageLikeService {
	return &PageLikeService{
		repo:      repo,
		likeCache: likeCache,
		lock:      lock,
	}
}

// Like 先写库；缓存集合直接更新，计数在锁保护下强更新，拿不到锁就删Key交给读侧重建
func (s *PageLikeService) Like(ctx context.Context, userID, pageID uint64) (bool, error) {
	if userID == 0 || pageID == 0 {
		return false, errs.ErrNotFound
	}

	changed, err := s.repo.Like(ctx, userID, pageID)
	if err != nil || !changed {
		// 幂等命中时惰性回填集合（不创建新集合）
		if err == nil {
			s.likeCache.WarmIsLiked(ctx, userID, pageID, true)
		}
		return changed, err
	}

	// 集合可直接更新（不强制），失败忽略
	_ = s.likeCache.AddLike(ctx, userID, pageID)

	token := fmt.Sprintf("%d-%d-%d", userID, pageID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, pageID, token)
	if got {
		defer func() { _ = s.lock.Release(ctx, pageID, token) }()
		// AddLike 已 INCR；锁内回源校准一次，失败则降级删Key
		v, err := s.repo.GetLikeCount(ctx, pageID)
		if err != nil || s.likeCache.SetLikeCount(ctx, pageID, v) != nil {
			_ = s.likeCache.DeleteCount(ctx, pageID)
		}
	} else {
		// 拿不到锁，避免并发冲突，删除计数Key
		_ = s.likeCache.DeleteCount(ctx, pageID)
	}
	return true, nil
}

// Unlike 同样策略：先写库，缓存更新失败降级删Key
func (s *PageLikeService) Unlike(ctx context.Context, userID, pageID uint64) (bool, error) {
	if userID == 0 || pageID == 0 {
		return false, errs.ErrNotFound
	}
	changed, err := s.repo.Unlike(ctx, userID, pageID)
	if err != nil || !changed {
		if err == nil {
			s.likeCache.WarmIsLiked(ctx, userID, pageID, false)
		}
		return changed, err
	}

	_ = s.likeCache.RemoveLike(ctx, userID, pageID)

	token := fmt.Sprintf("%d-%d-%d", userID, pageID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, pageID, token)
	if got {
		defer func() { _ = s.lock.Release(ctx, pageID, token) }()
	} else {
		_ = s.likeCache.DeleteCount(ctx, pageID)
	}
	return true, nil
}

func (s *PageLikeService) IsLiked(ctx context.Context, userID, pageID uint64) (bool, error) {
	if userID == 0 || pageID == 0 {
		return false, errs.ErrNotFound
	}
	// 先查缓存集合（命中才用）
	if b, ok, err := s.likeCache.IsLikedCached(ctx, userID, pageID); err == nil && ok {
		return b, nil
	}
	// 回源 MySQL
	b, err := s.repo.IsLiked(ctx, userID, pageID)
	if err == nil {
		s.likeCache.WarmIsLiked(ctx, userID, pageID, b)
	}
	return b, err
}

// GetCount 缓存双检 + 分布式锁防止缓存击穿打垮DB
func (s *PageLikeService) GetCount(ctx context.Context, userID, pageID uint64) (int64, error) {
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, pageID); err == nil && ok {
		return v, nil
	}

	token := fmt.Sprintf("%d-%d-%d", userID, pageID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, pageID, token)
	if got {
		defer func() { _ = s.lock.Release(ctx, pageID, token) }()

		// 第二次检查
		if v, ok, err := s.likeCache.GetLikeCountCached(ctx, pageID); err == nil && ok {
			return v, nil
		}

		v, err := s.repo.GetLikeCount(ctx, pageID)
		if err != nil {
			return 0, err
		}
		_ = s.likeCache.SetLikeCount(ctx, pageID, v)
		return v, nil
	}

	// 没拿到锁，短暂退避后再读一次缓存，避免全体打DB
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, pageID); err == nil && ok {
		return v, nil
	}
	return s.repo.GetLikeCount(ctx, pageID)
}
