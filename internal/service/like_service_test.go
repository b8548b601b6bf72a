package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn        func(context.Context, uint, uint) (*models.Like, error)
	deleteFn        func(context.Context, uint, uint) error
	listByArticleFn func(context.Context, uint) ([]*models.Like, error)
	existsFn        func(context.Context, uint, uint) (bool, error)
}

func (s *likeRepoStub) Create(ctx context.Context, userID, articleID uint) (*models.Like, error) {
	return s.createFn(ctx, userID, articleID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, articleID uint) error {
	return s.deleteFn(ctx, userID, articleID)
}
func (s *likeRepoStub) ListByArticle(ctx context.Context, articleID uint) ([]*models.Like, error) {
	return s.listByArticleFn(ctx, articleID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, articleID uint) (bool, error) {
	return s.existsFn(ctx, userID, articleID)
}

func TestLikeServiceLikeArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("missing article surfaces not found", func(t *testing.T) {
		articleRepo := &articleRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.Article, error) {
				return nil, models.NewNotFoundError("Article", id)
			},
		}
		svc := NewLikeService(&likeRepoStub{}, articleRepo)
		_, err := svc.LikeArticle(ctx, 1, 2)
		assertAppErrorCode(t, err, models.ErrCodeNotFound)
	})

	t.Run("duplicate propagates from repository", func(t *testing.T) {
		likeRepo := &likeRepoStub{
			createFn: func(_ context.Context, _, _ uint) (*models.Like, error) {
				return nil, models.NewDuplicateError("Article already liked")
			},
		}
		svc := NewLikeService(likeRepo, articleExistsStub())
		_, err := svc.LikeArticle(ctx, 1, 2)
		assertAppErrorCode(t, err, models.ErrCodeDuplicate)
	})

	t.Run("success", func(t *testing.T) {
		likeRepo := &likeRepoStub{
			createFn: func(_ context.Context, userID, articleID uint) (*models.Like, error) {
				return &models.Like{ID: 3, UserID: userID, ArticleID: articleID}, nil
			},
		}
		svc := NewLikeService(likeRepo, articleExistsStub())
		like, err := svc.LikeArticle(ctx, 1, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 1, like.UserID)
	})
}

func TestLikeServiceUnlikeArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous unauthorized", func(t *testing.T) {
		svc := NewLikeService(&likeRepoStub{}, articleExistsStub())
		err := svc.UnlikeArticle(ctx, 0, 2)
		assertAppErrorCode(t, err, models.ErrCodeUnauthenticated)
	})

	t.Run("absent like surfaces not found", func(t *testing.T) {
		likeRepo := &likeRepoStub{
			deleteFn: func(_ context.Context, _, articleID uint) error {
				return models.NewNotFoundError("Like", articleID)
			},
		}
		svc := NewLikeService(likeRepo, articleExistsStub())
		err := svc.UnlikeArticle(ctx, 1, 2)
		assertAppErrorCode(t, err, models.ErrCodeNotFound)
	})

	t.Run("success scopes delete to caller", func(t *testing.T) {
		var gotUser, gotArticle uint
		likeRepo := &likeRepoStub{
			deleteFn: func(_ context.Context, userID, articleID uint) error {
				gotUser, gotArticle = userID, articleID
				return nil
			},
		}
		svc := NewLikeService(likeRepo, articleExistsStub())
		require.NoError(t, svc.UnlikeArticle(ctx, 1, 2))
		assert.EqualValues(t, 1, gotUser)
		assert.EqualValues(t, 2, gotArticle)
	})
}
