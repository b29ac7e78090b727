package service

import (
	"context"
	"errors"
	"time"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/policy"

	"go.uber.org/zap"
)

// MembershipChecker 跨组件契约：创建页面前必须是 APPROVED 成员
type MembershipChecker interface {
	CheckMembership(ctx context.Context, userID, communityID uint64) error
}

// SearchCriteria 三个条件全部可选；username 提供但无人匹配时整个搜索失败
type SearchCriteria struct {
	Tags     []string
	Title    string
	Username string
}

// ModerationService 页面审核状态机：
// (none) -> PENDING -> {APPROVED, REJECTED}；任意状态可被删除。
type ModerationService struct {
	pages       PageStore
	links       PageLinkStore
	communities CommunityStore
	users       UserStore
	membership  MembershipChecker
	policy      Authorizer
	sink        EventSink
	notifier    Notifier
	log         *zap.Logger

	storeTimeout time.Duration
	counterRetry int
}

func NewModerationService(
	pages PageStore,
	links PageLinkStore,
	communities CommunityStore,
	users UserStore,
	membership MembershipChecker,
	authorizer Authorizer,
	sink EventSink,
	notifier Notifier,
	log *zap.Logger,
	storeTimeout time.Duration,
	counterRetry int,
) *ModerationService {
	return &ModerationService{
		pages:        pages,
		links:        links,
		communities:  communities,
		users:        users,
		membership:   membership,
		policy:       authorizer,
		sink:         sink,
		notifier:     notifier,
		log:          log,
		storeTimeout: storeTimeout,
		counterRetry: counterRetry,
	}
}

// CreatePage 作者必须已是该社区 APPROVED 成员，NotMember/NotApproved 原样上抛
func (s *ModerationService) CreatePage(ctx context.Context, authorID, communityID uint64, title, content string, tags []string) (*model.Page, error) {
	if title == "" {
		return nil, errs.ErrInvalidState
	}

	if err := s.membership.CheckMembership(ctx, authorID, communityID); err != nil {
		return nil, err
	}

	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	page := &model.Page{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		Tags:     model.StringList(tags),
	}
	if _, err := s.pages.CreateWithLink(sctx, page, communityID); err != nil {
		return nil, err
	}

	go publishEvent(s.sink, s.log, NewEvent(EventPageSubmitted, communityID, authorID, page.ID))
	if s.notifier != nil {
		s.notifier.PageSubmitted(ctx, communityID, page)
	}
	return page, nil
}

// ApprovePage 条件翻转 link PENDING -> APPROVED 为线性化点，page_count 随后补写
func (s *ModerationService) ApprovePage(ctx context.Context, adminID, communityID, pageID uint64) error {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	if err := s.policy.Authorize(sctx, adminID, policy.PermApprovePage, communityID); err != nil {
		return err
	}

	affected, err := s.links.ApprovePending(sctx, communityID, pageID, adminID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNoPendingPage
	}

	retryCounter(sctx, s.log, s.counterRetry, s.storeTimeout, "page_count", communityID, func(c context.Context) error {
		return s.communities.AddPageCount(c, communityID, +1)
	})

	go publishEvent(s.sink, s.log, NewEvent(EventPageApproved, communityID, adminID, pageID))
	s.notifyAuthor(ctx, communityID, pageID, true)
	return nil
}

// RejectPage 翻转为 REJECTED 留痕，从未计数故不动计数
func (s *ModerationService) RejectPage(ctx context.Context, adminID, communityID, pageID uint64) error {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	if err := s.policy.Authorize(sctx, adminID, policy.PermApprovePage, communityID); err != nil {
		return err
	}

	affected, err := s.links.RejectPending(sctx, communityID, pageID, adminID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNoPendingPage
	}

	go publishEvent(s.sink, s.log, NewEvent(EventPageRejected, communityID, adminID, pageID))
	s.notifyAuthor(ctx, communityID, pageID, false)
	return nil
}

// RemovePage 作者本人或持移除权限的管理员可删；只有曾 APPROVED 的关联才回退计数
func (s *ModerationService) RemovePage(ctx context.Context, requesterID, communityID, pageID uint64, isAdmin bool) error {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	page, err := s.pages.FindByID(sctx, pageID)
	if err != nil {
		return err
	}
	if isAdmin {
		if err = s.policy.Authorize(sctx, requesterID, policy.PermRemovePage, communityID); err != nil {
			return err
		}
	} else if requesterID != page.AuthorID {
		return errs.ErrUnauthorized
	}

	link, err := s.links.Get(sctx, communityID, pageID)
	if err != nil {
		return err
	}
	wasApproved := link.PageStatus == model.PageApproved

	// 按观察到的状态条件删除，并发状态翻转时放弃本次请求
	affected, err := s.links.DeleteWithStatus(sctx, communityID, pageID, link.PageStatus)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrConflict
	}

	if wasApproved {
		retryCounter(sctx, s.log, s.counterRetry, s.storeTimeout, "page_count", communityID, func(c context.Context) error {
			return s.communities.AddPageCount(c, communityID, -1)
		})
	}

	if err = s.pages.Delete(sctx, pageID); err != nil {
		return err
	}

	go publishEvent(s.sink, s.log, NewEvent(EventPageRemoved, communityID, requesterID, pageID))
	return nil
}

// SearchPages 标签取集合包含，标题大小写不敏感子串；
// username 给了但查无此人时直接整体失败，不返回空列表。
func (s *ModerationService) SearchPages(ctx context.Context, crit SearchCriteria, page, size int) ([]model.Page, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()

	filter := PageSearchFilter{
		Tags:  crit.Tags,
		Title: crit.Title,
	}
	if crit.Username != "" {
		author, err := s.users.FindByUsername(sctx, crit.Username)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, errs.ErrAuthorNotFound
			}
			return nil, err
		}
		filter.AuthorID = &author.ID
	}

	return s.pages.Search(sctx, filter, (page-1)*size, size)
}

func (s *ModerationService) ListPending(ctx context.Context, communityID uint64, page, size int) ([]PendingPage, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return s.links.ListPending(sctx, communityID, (page-1)*size, size)
}

func (s *ModerationService) GetPage(ctx context.Context, pageID uint64) (*model.Page, error) {
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return s.pages.FindByID(sctx, pageID)
}

// notifyAuthor 审核结果通知作者，尽力而为
func (s *ModerationService) notifyAuthor(ctx context.Context, communityID, pageID uint64, approved bool) {
	if s.notifier == nil {
		return
	}
	sctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	page, err := s.pages.FindByID(sctx, pageID)
	if err != nil {
		s.log.Warn("load page for notification failed", zap.Uint64("page_id", pageID), zap.Error(err))
		return
	}
	if approved {
		s.notifier.PageApproved(ctx, communityID, page)
	} else {
		s.notifier.PageRejected(ctx, communityID, page)
	}
}
