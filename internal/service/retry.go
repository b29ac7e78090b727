package service

import (
	"context"
	"time"

	"github.com/venturelab/venturehub/internal/errs"

	"go.uber.org/zap"
)

const (
	defaultStoreTimeout = 3 * time.Second
	defaultCounterRetry = 3
	retryBaseBackoff    = 50 * time.Millisecond
)

// retryCounter 状态翻转成功后的计数补写：有限次重试，耗尽后记对账告警放行。
// 补写不继承请求级超时——走到这里时 sctx 往往已经接近或越过截止时间，
// 每次尝试都换一个独立的新超时，重试才有第二次机会。
// 计数不是权威数据，可由对账任务重算，不值得为它阻塞用户可见的状态迁移。
func retryCounter(ctx context.Context, log *zap.Logger, attempts int, timeout time.Duration, what string, communityID uint64, fn func(context.Context) error) {
	if attempts <= 0 {
		attempts = defaultCounterRetry
	}
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	base := context.WithoutCancel(ctx)

	var err error
	for i := 0; i < attempts; i++ {
		actx, cancel := context.WithTimeout(base, timeout)
		err = fn(actx)
		cancel()
		if err == nil {
			return
		}
		if !errs.Retryable(err) {
			break
		}
		if i < attempts-1 {
			time.Sleep(retryBaseBackoff << i)
		}
	}
	log.Warn("counter update failed, leaving to reconcile sweep",
		zap.String("counter", what),
		zap.Uint64("community_id", communityID),
		zap.Error(err))
}

// storeCtx 所有存储操作的统一超时
func storeCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
