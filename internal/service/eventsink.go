package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/repository/mysql"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 审核事件类型
const (
	EventMembershipRequested = "membership.requested"
	EventMembershipApproved  = "membership.approved"
	EventMembershipRejected  = "membership.rejected"
	EventMembershipRemoved   = "membership.removed"
	EventPageSubmitted       = "page.submitted"
	EventPageApproved        = "page.approved"
	EventPageRejected        = "page.rejected"
	EventPageRemoved         = "page.removed"
)

// Event 工作流状态迁移的对外公告
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	CommunityID uint64    `json:"community_id"`
	ActorID     uint64    `json:"actor_id"`
	SubjectID   uint64    `json:"subject_id"`
	At          time.Time `json:"at"`
}

func NewEvent(eventType string, communityID, actorID, subjectID uint64) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		CommunityID: communityID,
		ActorID:     actorID,
		SubjectID:   subjectID,
		At:          time.Now().UTC(),
	}
}

// EventSink 发布失败只记录日志，绝不影响工作流主状态
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

// OutboxSink 事件先落库，由 relayer 异步投递到 kafka
type OutboxSink struct {
	repo *mysql.OutboxRepository
}

func NewOutboxSink(repo *mysql.OutboxRepository) *OutboxSink {
	return &OutboxSink{repo: repo}
}

func (s *OutboxSink) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.repo.Insert(ctx, &model.ModerationOutbox{
		EventType:   ev.Type,
		CommunityID: ev.CommunityID,
		ActorID:     ev.ActorID,
		SubjectID:   ev.SubjectID,
		Payload:     string(payload),
		Status:      0,
	})
}

// LogSink 默认 sink（占位）：只打印，开发环境用
type LogSink struct {
	Log *zap.Logger
}

func (s *LogSink) Publish(_ context.Context, ev Event) error {
	s.Log.Info("event",
		zap.String("id", ev.ID),
		zap.String("type", ev.Type),
		zap.Uint64("community_id", ev.CommunityID),
		zap.Uint64("actor_id", ev.ActorID),
		zap.Uint64("subject_id", ev.SubjectID))
	return nil
}

// publishEvent 尽力而为：脱离请求上下文，失败仅记日志
func publishEvent(sink EventSink, log *zap.Logger, ev Event) {
	if sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sink.Publish(ctx, ev); err != nil {
		log.Warn("event publish failed",
			zap.String("type", ev.Type),
			zap.Uint64("community_id", ev.CommunityID),
			zap.Error(err))
	}
}
