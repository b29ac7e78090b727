package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/venturelab/venturehub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOutbox struct {
	rows    []model.ModerationOutbox
	sent    []uint64
	failed  []uint64
	listErr error
}

func (f *fakeOutbox) List(_ context.Context, _ int) ([]model.ModerationOutbox, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeOutbox) MarkSent(_ context.Context, id uint64) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(_ context.Context, id uint64) error {
	f.failed = append(f.failed, id)
	return nil
}

func TestDrainOnceMarksSent(t *testing.T) {
	repo := &fakeOutbox{rows: []model.ModerationOutbox{
		{ID: 1, EventType: EventMembershipApproved, CommunityID: 10},
		{ID: 2, EventType: EventPageApproved, CommunityID: 10},
	}}
	var delivered []uint64
	sender := func(_ context.Context, ob *model.ModerationOutbox) error {
		delivered = append(delivered, ob.ID)
		return nil
	}

	r := NewOutboxRelayer(repo, sender, 10, time.Second, zap.NewNop())
	r.DrainOnce(context.Background())

	assert.Equal(t, []uint64{1, 2}, delivered)
	assert.Equal(t, []uint64{1, 2}, repo.sent)
	assert.Empty(t, repo.failed)
}

// 单条投递失败只标记该条重试，不阻塞同批其余事件
func TestDrainOnceFailureDoesNotBlockBatch(t *testing.T) {
	repo := &fakeOutbox{rows: []model.ModerationOutbox{
		{ID: 1}, {ID: 2}, {ID: 3},
	}}
	sender := func(_ context.Context, ob *model.ModerationOutbox) error {
		if ob.ID == 2 {
			return errors.New("broker down")
		}
		return nil
	}

	r := NewOutboxRelayer(repo, sender, 10, time.Second, zap.NewNop())
	r.DrainOnce(context.Background())

	assert.Equal(t, []uint64{1, 3}, repo.sent)
	assert.Equal(t, []uint64{2}, repo.failed)
}

func TestDrainOnceListFailure(t *testing.T) {
	repo := &fakeOutbox{listErr: errors.New("db down")}
	r := NewOutboxRelayer(repo, LogSender(zap.NewNop()), 10, time.Second, zap.NewNop())
	r.DrainOnce(context.Background())
	assert.Empty(t, repo.sent)
	assert.Empty(t, repo.failed)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := &fakeOutbox{}
	r := NewOutboxRelayer(repo, LogSender(zap.NewNop()), 10, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relayer did not stop")
	}
}

func TestNewEventFields(t *testing.T) {
	ev := NewEvent(EventMembershipApproved, 10, 100, 1)
	require.NotEmpty(t, ev.ID)
	assert.Equal(t, EventMembershipApproved, ev.Type)
	assert.False(t, ev.At.IsZero())
}
