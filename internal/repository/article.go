// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// FeedPageSize is the fixed page size of the public article feed.
const FeedPageSize = 7

// FeedQuery describes one page of the public feed: an optional free-text
// search, an optional ordering and a 1-based page number.
type FeedQuery struct {
	Search   string
	Ordering string
	Page     int
}

// feedOrderings whitelists the orderings callers may request. Every entry
// ends with the primary key so pagination stays stable across pages.
var feedOrderings = map[string]string{
	"":             "articles.id",
	"likes_count":  "likes_count, articles.id",
	"-likes_count": "likes_count DESC, articles.id",
	"created_at":   "articles.created_at, articles.id",
	"-created_at":  "articles.created_at DESC, articles.id",
}

// ArticleRepository defines the interface for article data operations.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	GetDetail(ctx context.Context, id uint) (*models.Article, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Article, error)
	Feed(ctx context.Context, q FeedQuery) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// annotateLikes adds the likes_count column in the same pass as the base
// query, so the cost stays linear in the page size.
func (r *articleRepository) annotateLikes(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Article{}).Select(
		"articles.*, (SELECT COUNT(*) FROM likes WHERE likes.article_id = articles.id) AS likes_count")
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	defer observability.TrackQuery("create", "articles")()
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

// GetByID loads an article with its owner and topics, annotated with the
// like count. Comments are not loaded; see GetDetail.
func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.annotateLikes(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Topics").
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Article", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &article, nil
}

// GetDetail loads the full article representation including comments.
func (r *articleRepository) GetDetail(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.annotateLikes(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Topics").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Article", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &article, nil
}

// ListByUser returns the owner's private listing, newest first by ID.
func (r *articleRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.annotateLikes(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Topics").
		Where("articles.user_id = ?", userID).
		Order("articles.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

// Feed composes the public cross-user listing: annotate like counts, apply
// the search filter, apply ordering, then paginate at FeedPageSize.
// Out-of-range pages yield an empty slice.
func (r *articleRepository) Feed(ctx context.Context, q FeedQuery) ([]*models.Article, error) {
	if q.Page < 1 {
		return nil, models.NewValidationError("Page must be a positive integer")
	}

	base := r.annotateLikes(r.db.WithContext(ctx)).
		Joins("JOIN users ON users.id = articles.user_id").
		Preload("User").
		Preload("Topics")

	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		// EXISTS keeps topic matches from duplicating article rows.
		base = base.Where(
			`LOWER(articles.title) LIKE ?
			 OR LOWER(users.first_name) LIKE ?
			 OR LOWER(users.last_name) LIKE ?
			 OR EXISTS (
				SELECT 1 FROM article_topics
				JOIN topics ON topics.id = article_topics.topic_id
				WHERE article_topics.article_id = articles.id
				  AND LOWER(topics.name) LIKE ?)`,
			needle, needle, needle, needle)
	}

	order, ok := feedOrderings[q.Ordering]
	if !ok {
		order = feedOrderings[""]
	}

	var articles []*models.Article
	err := base.
		Order(order).
		Limit(FeedPageSize).
		Offset((q.Page - 1) * FeedPageSize).
		Find(&articles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	defer observability.TrackQuery("update", "articles")()
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

// Delete removes the article along with its comments, likes and topic
// associations in one transaction. Topic rows themselves survive.
func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "articles")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Article{ID: id}).Association("Topics").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, id)
	return nil
}
