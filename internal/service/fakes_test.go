package service

import (
	"context"
	"sync"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/policy"
)

// 内存版存储假实现，行为上等价于条件更新语义：
// 状态翻转返回受影响行数，调用方据此判断线性化点归属。

type memberKey struct{ communityID, userID uint64 }

type fakeMembers struct {
	mu      sync.Mutex
	records map[memberKey]*model.CommunityMember
	err     error
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{records: make(map[memberKey]*model.CommunityMember)}
}

func (f *fakeMembers) CreatePending(_ context.Context, m *model.CommunityMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	k := memberKey{m.CommunityID, m.UserID}
	if _, ok := f.records[k]; ok {
		return errs.ErrConflict
	}
	m.MemberStatus = model.MemberPending
	f.records[k] = m
	return nil
}

func (f *fakeMembers) Get(_ context.Context, communityID, userID uint64) (*model.CommunityMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.records[memberKey{communityID, userID}]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMembers) ApprovePending(_ context.Context, communityID, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	m, ok := f.records[memberKey{communityID, userID}]
	if !ok || m.MemberStatus != model.MemberPending {
		return 0, nil
	}
	m.MemberStatus = model.MemberApproved
	return 1, nil
}

func (f *fakeMembers) DeleteWithStatus(_ context.Context, communityID, userID uint64, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	k := memberKey{communityID, userID}
	m, ok := f.records[k]
	if !ok || m.MemberStatus != status {
		return 0, nil
	}
	delete(f.records, k)
	return 1, nil
}

func (f *fakeMembers) ListByCommunity(_ context.Context, communityID uint64, status string, _, _ int) ([]model.CommunityMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CommunityMember
	for k, m := range f.records {
		if k.communityID != communityID {
			continue
		}
		if status != "" && m.MemberStatus != status {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMembers) ListUserCommunityIDs(_ context.Context, userID uint64) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uint64
	for k, m := range f.records {
		if k.userID == userID && m.MemberStatus == model.MemberApproved {
			out = append(out, k.communityID)
		}
	}
	return out, nil
}

type fakeCommunities struct {
	mu           sync.Mutex
	known        map[uint64]*model.Community
	memberCounts map[uint64]int64
	pageCounts   map[uint64]int64
	adminIDs     map[uint64][]uint64

	memberCountErrs int // 前 N 次 AddMemberCount 返回超时
	pageCountErrs   int
}

func newFakeCommunities(ids ...uint64) *fakeCommunities {
	f := &fakeCommunities{
		known:        make(map[uint64]*model.Community),
		memberCounts: make(map[uint64]int64),
		pageCounts:   make(map[uint64]int64),
		adminIDs:     make(map[uint64][]uint64),
	}
	for _, id := range ids {
		f.known[id] = &model.Community{ID: id}
	}
	return f
}

func (f *fakeCommunities) FindByID(_ context.Context, id uint64) (*model.Community, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.known[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return c, nil
}

func (f *fakeCommunities) AddMemberCount(_ context.Context, id uint64, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.memberCountErrs > 0 {
		f.memberCountErrs--
		return errs.ErrStoreTimeout
	}
	f.memberCounts[id] += delta
	if f.memberCounts[id] < 0 {
		f.memberCounts[id] = 0
	}
	return nil
}

func (f *fakeCommunities) AddPageCount(_ context.Context, id uint64, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pageCountErrs > 0 {
		f.pageCountErrs--
		return errs.ErrStoreTimeout
	}
	f.pageCounts[id] += delta
	if f.pageCounts[id] < 0 {
		f.pageCounts[id] = 0
	}
	return nil
}

func (f *fakeCommunities) ListAdminIDs(_ context.Context, communityID uint64) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adminIDs[communityID], nil
}

func (f *fakeCommunities) memberCount(id uint64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.memberCounts[id]
}

func (f *fakeCommunities) pageCount(id uint64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageCounts[id]
}

// fakeAuthorizer 默认放行，denied 置位后全部拒绝
type fakeAuthorizer struct {
	denied bool
	err    error
	calls  []policy.Permission
}

func (f *fakeAuthorizer) Authorize(_ context.Context, _ uint64, perm policy.Permission, _ uint64) error {
	f.calls = append(f.calls, perm)
	if f.err != nil {
		return f.err
	}
	if f.denied {
		return errs.ErrUnauthorized
	}
	return nil
}

// captureSink 记录发布的事件，供断言
type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Publish(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *captureSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

type pageKey struct{ communityID, pageID uint64 }

type fakePages struct {
	mu     sync.Mutex
	nextID uint64
	pages  map[uint64]*model.Page
}

func newFakePages() *fakePages {
	return &fakePages{pages: make(map[uint64]*model.Page)}
}

func (f *fakePages) CreateWithLink(_ context.Context, page *model.Page, communityID uint64) (*model.CommunityPageLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	page.ID = f.nextID
	page.PageStatus = model.PagePending
	f.pages[page.ID] = page
	return &model.CommunityPageLink{CommunityID: communityID, PageID: page.ID, PageStatus: model.PagePending}, nil
}

func (f *fakePages) FindByID(_ context.Context, id uint64) (*model.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pages[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePages) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pages, id)
	return nil
}

func (f *fakePages) Search(_ context.Context, filter PageSearchFilter, _, _ int) ([]model.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Page
	for _, p := range f.pages {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

type fakeLinks struct {
	mu    sync.Mutex
	links map[pageKey]*model.CommunityPageLink
	pages *fakePages
}

func newFakeLinks(pages *fakePages) *fakeLinks {
	return &fakeLinks{links: make(map[pageKey]*model.CommunityPageLink), pages: pages}
}

func (f *fakeLinks) add(communityID, pageID uint64, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links[pageKey{communityID, pageID}] = &model.CommunityPageLink{
		CommunityID: communityID,
		PageID:      pageID,
		PageStatus:  status,
	}
}

func (f *fakeLinks) Get(_ context.Context, communityID, pageID uint64) (*model.CommunityPageLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.links[pageKey{communityID, pageID}]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLinks) flip(communityID, pageID, adminID uint64, to string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.links[pageKey{communityID, pageID}]
	if !ok || l.PageStatus != model.PagePending {
		return 0, nil
	}
	l.PageStatus = to
	if to == model.PageApproved {
		l.ApprovedBy = &adminID
	} else {
		l.RejectedBy = &adminID
	}
	if f.pages != nil {
		if p, ok := f.pages.pages[pageID]; ok {
			p.PageStatus = to
		}
	}
	return 1, nil
}

func (f *fakeLinks) ApprovePending(_ context.Context, communityID, pageID, adminID uint64) (int64, error) {
	return f.flip(communityID, pageID, adminID, model.PageApproved)
}

func (f *fakeLinks) RejectPending(_ context.Context, communityID, pageID, adminID uint64) (int64, error) {
	return f.flip(communityID, pageID, adminID, model.PageRejected)
}

func (f *fakeLinks) DeleteWithStatus(_ context.Context, communityID, pageID uint64, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := pageKey{communityID, pageID}
	l, ok := f.links[k]
	if !ok || l.PageStatus != status {
		return 0, nil
	}
	delete(f.links, k)
	return 1, nil
}

func (f *fakeLinks) ListPending(_ context.Context, communityID uint64, _, _ int) ([]PendingPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []PendingPage
	for k, l := range f.links {
		if k.communityID != communityID || l.PageStatus != model.PagePending {
			continue
		}
		pp := PendingPage{Link: *l}
		if f.pages != nil {
			if p, ok := f.pages.pages[k.pageID]; ok {
				pp.Page = *p
			}
		}
		out = append(out, pp)
	}
	return out, nil
}

type fakeUsers struct {
	byName map[string]*model.User
}

func (f *fakeUsers) FindByID(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

// fakeMembershipGate 固定返回值的成员检查
type fakeMembershipGate struct {
	err error
}

func (f *fakeMembershipGate) CheckMembership(_ context.Context, _, _ uint64) error {
	return f.err
}
