package service

import (
	"context"
	"testing"

	"github.com/venturelab/venturehub/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCountStore struct {
	rows        []mysql.CountRow
	realMembers map[uint64]int64
	realPages   map[uint64]int64

	fixedMembers map[uint64]int64
	fixedPages   map[uint64]int64
}

func newFakeCountStore(rows ...mysql.CountRow) *fakeCountStore {
	return &fakeCountStore{
		rows:         rows,
		realMembers:  make(map[uint64]int64),
		realPages:    make(map[uint64]int64),
		fixedMembers: make(map[uint64]int64),
		fixedPages:   make(map[uint64]int64),
	}
}

func (f *fakeCountStore) ListCounts(_ context.Context, _ int, lastID uint64) ([]mysql.CountRow, uint64, error) {
	var out []mysql.CountRow
	var next uint64
	for _, r := range f.rows {
		if r.ID > lastID {
			out = append(out, r)
			next = r.ID
		}
	}
	return out, next, nil
}

func (f *fakeCountStore) RealMemberCount(_ context.Context, id uint64) (int64, error) {
	return f.realMembers[id], nil
}

func (f *fakeCountStore) RealPageCount(_ context.Context, id uint64) (int64, error) {
	return f.realPages[id], nil
}

func (f *fakeCountStore) FixMemberCount(_ context.Context, id uint64, real int64) error {
	f.fixedMembers[id] = real
	return nil
}

func (f *fakeCountStore) FixPageCount(_ context.Context, id uint64, real int64) error {
	f.fixedPages[id] = real
	return nil
}

func TestReconcileFixesDriftedCounts(t *testing.T) {
	store := newFakeCountStore(
		mysql.CountRow{ID: 1, MemberCount: 5, PageCount: 2},
		mysql.CountRow{ID: 2, MemberCount: 3, PageCount: 0},
	)
	// 社区 1 两个计数都漂了，社区 2 正常
	store.realMembers[1] = 4
	store.realPages[1] = 3
	store.realMembers[2] = 3
	store.realPages[2] = 0

	r := NewCommunityCountReconciler(store, 10, zap.NewNop())
	r.ReconcileOnce(context.Background())

	assert.Equal(t, map[uint64]int64{1: 4}, store.fixedMembers)
	assert.Equal(t, map[uint64]int64{1: 3}, store.fixedPages)
}

func TestReconcileNoDriftNoWrites(t *testing.T) {
	store := newFakeCountStore(mysql.CountRow{ID: 1, MemberCount: 2, PageCount: 1})
	store.realMembers[1] = 2
	store.realPages[1] = 1

	r := NewCommunityCountReconciler(store, 10, zap.NewNop())
	r.ReconcileOnce(context.Background())

	assert.Empty(t, store.fixedMembers)
	assert.Empty(t, store.fixedPages)
}
