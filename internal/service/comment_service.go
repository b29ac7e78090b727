package service

import (
	"context"
	"errors"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/repository/mysql"
)

type CommentService struct {
	repo  *mysql.CommentRepository
	pages *mysql.PageRepository
}

func NewCommentService(repo *mysql.CommentRepository, pages *mysql.PageRepository) *CommentService {
	return &CommentService{repo: repo, pages: pages}
}

// CreateComment 只允许评论已通过审核的页面
func (s *CommentService) CreateComment(ctx context.Context, authorID, pageID uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, errors.New("content required")
	}

	page, err := s.pages.FindByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page.PageStatus != model.PageApproved {
		return nil, errs.ErrInvalidState
	}

	c := &model.Comment{
		PageID:   pageID,
		AuthorID: authorID,
		Content:  content,
	}
	if err = s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) ListByPage(ctx context.Context, pageID uint64, page, size int) ([]model.Comment, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return s.repo.ListByPage(ctx, pageID, (page-1)*size, size)
}

// DeleteComment 作者本人或管理员可删
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID uint64, isAdmin bool) error {
	c, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !isAdmin && c.AuthorID != actorID {
		return errs.ErrUnauthorized
	}
	return s.repo.Delete(ctx, commentID)
}
