package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

type CreateCommentInput struct {
	UserID    uint
	ArticleID uint
	Content   string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

const maxCommentLen = 10000

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return nil
}

// CreateComment adds a comment to an article. Any authenticated user may
// comment; the article only needs to exist.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}
	if _, err := s.articleRepo.GetByID(ctx, in.ArticleID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:   in.Content,
		UserID:    in.UserID,
		ArticleID: in.ArticleID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, commentID uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, commentID)
}

func (s *CommentService) ListComments(ctx context.Context, articleID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByArticle(ctx, articleID, limit, offset)
}

// UpdateComment edits a comment. Only the commenting user may edit it; the
// article's owner has no say over other people's comments.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(in.UserID, policy.ActionUpdate, comment); err != nil {
		return nil, err
	}
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(userID, policy.ActionDelete, comment); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}
