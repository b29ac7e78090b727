package service

import (
	"context"
	"encoding/json"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/pkg"
	"github.com/venturelab/venturehub/internal/repository/mysql"

	"go.uber.org/zap"
)

// NotificationService 站内信 + 可选邮件。所有方法尽力而为：
// 通知失败只记日志，绝不影响调用方的工作流状态。
type NotificationService struct {
	repo        *mysql.NotificationRepository
	users       *mysql.UserRepository
	communities *mysql.CommunityRepository
	emailCfg    pkg.SMTPConfig
	emailOn     bool
	log         *zap.Logger
}

func NewNotificationService(
	repo *mysql.NotificationRepository,
	users *mysql.UserRepository,
	communities *mysql.CommunityRepository,
	emailCfg pkg.SMTPConfig,
	emailOn bool,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{
		repo:        repo,
		users:       users,
		communities: communities,
		emailCfg:    emailCfg,
		emailOn:     emailOn,
		log:         log,
	}
}

func (s *NotificationService) store(ctx context.Context, recipientID uint64, recipientKind, kind string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("notification payload marshal failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	err = s.repo.Create(ctx, &model.Notification{
		RecipientID:   recipientID,
		RecipientKind: recipientKind,
		Kind:          kind,
		Payload:       string(data),
	})
	if err != nil {
		s.log.Warn("notification store failed",
			zap.String("kind", kind),
			zap.Uint64("recipient_id", recipientID),
			zap.Error(err))
	}
}

// notifyCommunityAdmins 给社区全部管理员各发一条站内信
func (s *NotificationService) notifyCommunityAdmins(ctx context.Context, communityID uint64, kind string, payload any) {
	ids, err := s.communities.ListAdminIDs(ctx, communityID)
	if err != nil {
		s.log.Warn("list community admins failed", zap.Uint64("community_id", communityID), zap.Error(err))
		return
	}
	for _, id := range ids {
		s.store(ctx, id, model.RecipientAdmin, kind, payload)
	}
}

func (s *NotificationService) MembershipRequested(ctx context.Context, communityID, userID uint64) {
	s.notifyCommunityAdmins(ctx, communityID, model.NoticeMembershipRequested, map[string]any{
		"community_id": communityID,
		"user_id":      userID,
	})
}

func (s *NotificationService) MembershipApproved(ctx context.Context, communityID, userID uint64) {
	s.store(ctx, userID, model.RecipientUser, model.NoticeMembershipApproved, map[string]any{
		"community_id": communityID,
	})
}

func (s *NotificationService) MembershipRemoved(ctx context.Context, communityID, userID uint64) {
	s.store(ctx, userID, model.RecipientUser, model.NoticeMembershipRemoved, map[string]any{
		"community_id": communityID,
	})
}

func (s *NotificationService) PageSubmitted(ctx context.Context, communityID uint64, page *model.Page) {
	s.notifyCommunityAdmins(ctx, communityID, model.NoticePageSubmitted, map[string]any{
		"community_id": communityID,
		"page_id":      page.ID,
		"title":        page.Title,
	})
}

func (s *NotificationService) PageApproved(ctx context.Context, communityID uint64, page *model.Page) {
	s.store(ctx, page.AuthorID, model.RecipientUser, model.NoticePageApproved, map[string]any{
		"community_id": communityID,
		"page_id":      page.ID,
		"title":        page.Title,
	})
	s.emailAuthor(ctx, page, true)
}

func (s *NotificationService) PageRejected(ctx context.Context, communityID uint64, page *model.Page) {
	s.store(ctx, page.AuthorID, model.RecipientUser, model.NoticePageRejected, map[string]any{
		"community_id": communityID,
		"page_id":      page.ID,
		"title":        page.Title,
	})
	s.emailAuthor(ctx, page, false)
}

// emailAuthor 邮件通知审核结果，未配置 SMTP 时跳过
func (s *NotificationService) emailAuthor(ctx context.Context, page *model.Page, approved bool) {
	if !s.emailOn {
		return
	}
	author, err := s.users.FindByID(ctx, page.AuthorID)
	if err != nil {
		s.log.Warn("load author for email failed", zap.Uint64("author_id", page.AuthorID), zap.Error(err))
		return
	}
	subject := "页面审核结果"
	if err = pkg.SendEmail(s.emailCfg, author.Email, subject, pkg.PageReviewHTML(page.Title, approved)); err != nil {
		s.log.Warn("review email send failed", zap.String("to", author.Email), zap.Error(err))
	}
}

// ListMine 收件人视角的通知列表
func (s *NotificationService) ListMine(ctx context.Context, recipientID uint64, kind string, page, size int) ([]model.Notification, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return s.repo.ListForRecipient(ctx, recipientID, kind, (page-1)*size, size)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uint64, kind string) error {
	affected, err := s.repo.MarkRead(ctx, id, recipientID, kind)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
