package service

import (
	"context"
	"time"

	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/pkg"

	"go.uber.org/zap"
)

type Sender func(ctx context.Context, ob *model.ModerationOutbox) error

// OutboxStore relayer 只需要这三个操作
type OutboxStore interface {
	List(ctx context.Context, batchSize int) ([]model.ModerationOutbox, error)
	MarkSent(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64) error
}

// OutboxRelayer 把落库的审核事件异步投递出去
type OutboxRelayer struct {
	repo      OutboxStore
	batchSize int
	interval  time.Duration
	sender    Sender
	log       *zap.Logger
}

func NewOutboxRelayer(repo OutboxStore, sender Sender, batchSize int, interval time.Duration, log *zap.Logger) *OutboxRelayer {
	if batchSize <= 0 {
		batchSize = 200
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &OutboxRelayer{
		repo:      repo,
		batchSize: batchSize,
		interval:  interval,
		sender:    sender,
		log:       log,
	}
}

// Run 启动投递循环，ctx 取消即退出
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce 读一批待投递事件逐条发送，失败记重试交给下一轮
func (r *OutboxRelayer) DrainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		r.log.Warn("outbox query failed", zap.Error(err))
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			r.log.Warn("outbox send failed",
				zap.Uint64("id", ob.ID),
				zap.String("event_type", ob.EventType),
				zap.Error(err))
			if err = r.repo.MarkFailed(ctx, ob.ID); err != nil {
				r.log.Warn("outbox mark failed error", zap.Uint64("id", ob.ID), zap.Error(err))
			}
			continue
		}
		if err = r.repo.MarkSent(ctx, ob.ID); err != nil {
			r.log.Warn("outbox mark sent error", zap.Uint64("id", ob.ID), zap.Error(err))
		}
	}
}

// KafkaSender 生产环境的 sender：按社区分区投递
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ModerationOutbox) error {
		return producer.Send(ctx, pkg.PartitionKey(ob.CommunityID), []byte(ob.Payload))
	}
}

// LogSender 默认 sender（占位）：只打印
func LogSender(log *zap.Logger) Sender {
	return func(_ context.Context, ob *model.ModerationOutbox) error {
		log.Info("OUTBOX SEND",
			zap.String("event_type", ob.EventType),
			zap.Uint64("community_id", ob.CommunityID),
			zap.String("payload", ob.Payload))
		return nil
	}
}
