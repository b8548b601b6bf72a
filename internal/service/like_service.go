package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	articleRepo repository.ArticleRepository
}

func NewLikeService(likeRepo repository.LikeRepository, articleRepo repository.ArticleRepository) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		articleRepo: articleRepo,
	}
}

// LikeArticle records a like. The unique (user, article) index decides
// duplicates; a pre-check here would race under concurrent requests.
func (s *LikeService) LikeArticle(ctx context.Context, userID, articleID uint) (*models.Like, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.likeRepo.Create(ctx, userID, articleID)
}

// UnlikeArticle removes the caller's own like. The pair lookup already
// scopes to the caller, so ownership holds by construction; the policy
// check documents the rule.
func (s *LikeService) UnlikeArticle(ctx context.Context, userID, articleID uint) error {
	like := &models.Like{UserID: userID, ArticleID: articleID}
	if err := policy.Authorize(userID, policy.ActionDelete, like); err != nil {
		return err
	}
	return s.likeRepo.Delete(ctx, userID, articleID)
}

func (s *LikeService) ListLikes(ctx context.Context, articleID uint) ([]*models.Like, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.likeRepo.ListByArticle(ctx, articleID)
}

func (s *LikeService) HasLiked(ctx context.Context, userID, articleID uint) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, articleID)
}
