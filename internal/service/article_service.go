// Package service contains the business logic between HTTP handlers and
// repositories: input validation, ownership checks and cache policy.
package service

import (
	"context"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/policy"
	"quill/internal/repository"
)

type ArticleService struct {
	articleRepo repository.ArticleRepository
	topicRepo   repository.TopicRepository
}

// TopicInput is a single topic name in an article payload.
type TopicInput struct {
	Name string `json:"name"`
}

type CreateArticleInput struct {
	UserID   uint
	Title    string
	Opening  string
	Content  string
	ImageURL string
	Topics   []TopicInput
}

// UpdateArticleInput carries a partial update. Topics distinguishes absent
// (nil, leave attachments untouched) from empty (clear all attachments).
type UpdateArticleInput struct {
	UserID    uint
	ArticleID uint
	Title     *string
	Opening   *string
	Content   *string
	ImageURL  *string
	Topics    *[]TopicInput
}

func NewArticleService(articleRepo repository.ArticleRepository, topicRepo repository.TopicRepository) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		topicRepo:   topicRepo,
	}
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

func validateArticleFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}

func topicNames(in []TopicInput) []string {
	names := make([]string, 0, len(in))
	for _, t := range in {
		names = append(names, t.Name)
	}
	return names
}

func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if err := validateArticleFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:    strings.TrimSpace(in.Title),
		Opening:  in.Opening,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	if len(in.Topics) > 0 {
		if err := s.topicRepo.Reconcile(ctx, article, topicNames(in.Topics), in.UserID); err != nil {
			return nil, err
		}
	}
	return s.articleRepo.GetByID(ctx, article.ID)
}

// GetArticle returns the full detail view, comments included. Reads are open
// to everyone, authenticated or not.
func (s *ArticleService) GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := cache.Aside(ctx, cache.ArticleKey(id), &article, cache.ArticleTTL, func() error {
		detail, err := s.articleRepo.GetDetail(ctx, id)
		if err != nil {
			return err
		}
		article = *detail
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleService) ListMyArticles(ctx context.Context, userID uint, limit, offset int) ([]*models.Article, error) {
	return s.articleRepo.ListByUser(ctx, userID, limit, offset)
}

// Feed returns one page of the public cross-user listing. Only the
// unfiltered first page with default ordering is cached; every filtered or
// deep read goes to the database.
func (s *ArticleService) Feed(ctx context.Context, q repository.FeedQuery) ([]*models.Article, error) {
	filtered := "false"
	if q.Search != "" || q.Ordering != "" {
		filtered = "true"
	}
	observability.FeedRequests.WithLabelValues(filtered).Inc()

	if q.Search == "" && q.Ordering == "" && q.Page == 1 {
		var articles []*models.Article
		err := cache.Aside(ctx, cache.FeedKey(), &articles, cache.FeedTTL, func() error {
			var fetchErr error
			articles, fetchErr = s.articleRepo.Feed(ctx, q)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		return articles, nil
	}
	return s.articleRepo.Feed(ctx, q)
}

func (s *ArticleService) UpdateArticle(ctx context.Context, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(in.UserID, policy.ActionUpdate, article); err != nil {
		return nil, err
	}

	if in.Title != nil {
		article.Title = strings.TrimSpace(*in.Title)
	}
	if in.Opening != nil {
		article.Opening = *in.Opening
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.ImageURL != nil {
		article.ImageURL = *in.ImageURL
	}
	if err := validateArticleFields(article.Title, article.Content); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	if in.Topics != nil {
		if err := s.topicRepo.Reconcile(ctx, article, topicNames(*in.Topics), in.UserID); err != nil {
			return nil, err
		}
	}
	return s.articleRepo.GetByID(ctx, article.ID)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, userID, articleID uint) error {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(userID, policy.ActionDelete, article); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, articleID)
}
