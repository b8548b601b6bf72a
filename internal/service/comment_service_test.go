package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByArticleFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByArticle(ctx context.Context, articleID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByArticleFn(ctx, articleID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func articleExistsStub() *articleRepoStub {
	return &articleRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Article, error) {
			return &models.Article{ID: id, UserID: 99}, nil
		},
	}
}

func TestCommentServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("blank content rejected", func(t *testing.T) {
		svc := NewCommentService(&commentRepoStub{}, articleExistsStub())
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, ArticleID: 2, Content: "  "})
		assertAppErrorCode(t, err, models.ErrCodeValidation)
	})

	t.Run("missing article surfaces not found", func(t *testing.T) {
		articleRepo := &articleRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.Article, error) {
				return nil, models.NewNotFoundError("Article", id)
			},
		}
		svc := NewCommentService(&commentRepoStub{}, articleRepo)
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, ArticleID: 2, Content: "hi"})
		assertAppErrorCode(t, err, models.ErrCodeNotFound)
	})

	t.Run("any authenticated user may comment", func(t *testing.T) {
		commentRepo := &commentRepoStub{
			createFn: func(_ context.Context, c *models.Comment) error {
				c.ID = 10
				return nil
			},
		}
		svc := NewCommentService(commentRepo, articleExistsStub())
		comment, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, ArticleID: 2, Content: "hi"})
		require.NoError(t, err)
		assert.EqualValues(t, 10, comment.ID)
		assert.EqualValues(t, 1, comment.UserID)
	})
}

func TestCommentServiceUpdateOwnership(t *testing.T) {
	ctx := context.Background()
	commentRepo := &commentRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			// Comment authored by user 5 on an article owned by user 99.
			return &models.Comment{ID: id, UserID: 5, ArticleID: 2, Content: "old"}, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
	}
	svc := NewCommentService(commentRepo, articleExistsStub())

	t.Run("commenter may edit", func(t *testing.T) {
		comment, err := svc.UpdateComment(ctx, UpdateCommentInput{UserID: 5, CommentID: 1, Content: "new"})
		require.NoError(t, err)
		assert.Equal(t, "new", comment.Content)
	})

	t.Run("article owner may not edit another user's comment", func(t *testing.T) {
		_, err := svc.UpdateComment(ctx, UpdateCommentInput{UserID: 99, CommentID: 1, Content: "new"})
		assertAppErrorCode(t, err, models.ErrCodeForbidden)
	})
}

func TestCommentServiceDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	deleted := false
	commentRepo := &commentRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 5, ArticleID: 2}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		},
	}
	svc := NewCommentService(commentRepo, articleExistsStub())

	t.Run("non-owner forbidden", func(t *testing.T) {
		err := svc.DeleteComment(ctx, 6, 1)
		assertAppErrorCode(t, err, models.ErrCodeForbidden)
		assert.False(t, deleted)
	})

	t.Run("commenter deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(ctx, 5, 1))
		assert.True(t, deleted)
	})
}
