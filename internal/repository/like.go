package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations.
type LikeRepository interface {
	Create(ctx context.Context, userID, articleID uint) (*models.Like, error)
	Delete(ctx context.Context, userID, articleID uint) error
	ListByArticle(ctx context.Context, articleID uint) ([]*models.Like, error)
	Exists(ctx context.Context, userID, articleID uint) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like with ON CONFLICT DO NOTHING. The unique index on
// (user_id, article_id) is the authority on duplicates, so concurrent
// requests for the same pair never produce a second row.
func (r *likeRepository) Create(ctx context.Context, userID, articleID uint) (*models.Like, error) {
	defer observability.TrackQuery("create", "likes")()
	like := &models.Like{UserID: userID, ArticleID: articleID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
			DoNothing: true,
		}).
		Create(like)
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		observability.LikeConflicts.Inc()
		return nil, models.NewDuplicateError("Article already liked")
	}
	cache.InvalidateArticle(ctx, articleID)
	return like, nil
}

// Delete removes the like. A zero row count means the pair never existed.
func (r *likeRepository) Delete(ctx context.Context, userID, articleID uint) error {
	defer observability.TrackQuery("delete", "likes")()
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like", articleID)
	}
	cache.InvalidateArticle(ctx, articleID)
	return nil
}

func (r *likeRepository) ListByArticle(ctx context.Context, articleID uint) ([]*models.Like, error) {
	var likes []*models.Like
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
