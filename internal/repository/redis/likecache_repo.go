package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeSetTTL       = 24 * time.Hour
	LikeCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	LikeSetKeyPrefix = "like:set:page"  // 存放某个页面已点赞的用户ID集合
	LikeCntKeyPrefix = "like:cnt:page"  // 缓存某个页面的点赞计数
	LockKeyPrefix    = "lock:like:page" // 分布式锁
)

type LikeCacheRepository struct {
	likeSetTTL time.Duration
	likeCntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewLikeCacheRepository() *LikeCacheRepository {
	return &LikeCacheRepository{
		likeSetTTL: LikeSetTTL,
		likeCntTTL: LikeCntTTL,
	}
}

func NewDistLock() *DistLock {
	return &DistLock{RDB: Client}
}

func (r *LikeCacheRepository) likeSetKey(pageID uint64) string {
	return fmt.Sprintf("%s:%d", LikeSetKeyPrefix, pageID)
}
func (r *LikeCacheRepository) likeCntKey(pageID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, pageID)
}

// AddLike 写路径：成功写MySQL后再调用这些方法
func (r *LikeCacheRepository) AddLike(ctx context.Context, userID, pageID uint64) error {
	k := r.likeSetKey(pageID)
	if err := Client.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, k, r.likeSetTTL).Err()

	ck := r.likeCntKey(pageID)
	if err := Client.Incr(ctx, ck).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, ck, r.likeCntTTL).Err()
	return nil
}

func (r *LikeCacheRepository) RemoveLike(ctx context.Context, userID, pageID uint64) error {
	k := r.likeSetKey(pageID)
	if err := Client.SRem(ctx, k, userID).Err(); err != nil {
		return err
	}
	ck := r.likeCntKey(pageID)
	// 计数防负数
	if err := Client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, ck).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if val <= 0 {
			// 若不存在或<=0，直接返回，交给对账兜底
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Decr(ctx, ck)
			return nil
		})
		return err
	}, ck); err != nil {
		return err
	}
	return nil
}

// IsLikedCached 从缓存查看用户是否已经对页面点过赞
func (r *LikeCacheRepository) IsLikedCached(ctx context.Context, userID, pageID uint64) (bool, bool, error) {
	k := r.likeSetKey(pageID)
	exists, err := Client.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := Client.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

// GetLikeCountCached 从缓存读取页面的点赞数量
func (r *LikeCacheRepository) GetLikeCountCached(ctx context.Context, pageID uint64) (int64, bool, error) {
	ck := r.likeCntKey(pageID)
	val, err := Client.Get(ctx, ck).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// SetLikeCount 回填页面点赞数
func (r *LikeCacheRepository) SetLikeCount(ctx context.Context, pageID uint64, cnt int64) error {
	ck := r.likeCntKey(pageID)
	return Client.Set(ctx, ck, cnt, r.likeCntTTL).Err()
}

// WarmIsLiked 惰性回填：只在集合已存在时写，避免无界扩张
func (r *LikeCacheRepository) WarmIsLiked(ctx context.Context, userID, pageID uint64, liked bool) {
	k := r.likeSetKey(pageID)
	if ok, _ := Client.Exists(ctx, k).Result(); ok > 0 {
		if liked {
			_ = Client.SAdd(ctx, k, userID).Err()
		} else {
			_ = Client.SRem(ctx, k, userID).Err()
		}
		_ = Client.Expire(ctx, k, r.likeSetTTL).Err()
	}
}

// DeleteCount 删除计数缓存；delay>0 时延迟再删一次，抵消并发回填窗口
func (r *LikeCacheRepository) DeleteCount(ctx context.Context, pageID uint64, delay ...time.Duration) error {
	key := r.likeCntKey(pageID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// Acquire 请求加分布式锁
func (l *DistLock) Acquire(ctx context.Context, pageID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, pageID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用lua保证原子性
func (l *DistLock) Release(ctx context.Context, pageID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, pageID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
