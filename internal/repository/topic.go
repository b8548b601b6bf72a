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

// TopicRepository defines the interface for topic data operations.
type TopicRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]*models.Topic, error)
	GetByID(ctx context.Context, id uint) (*models.Topic, error)
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id uint) error
	Reconcile(ctx context.Context, article *models.Article, names []string, userID uint) error
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository creates a new topic repository.
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&topics).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return topics, nil
}

func (r *topicRepository) GetByID(ctx context.Context, id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Topic", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &topic, nil
}

func (r *topicRepository) Update(ctx context.Context, topic *models.Topic) error {
	defer observability.TrackQuery("update", "topics")()
	if err := r.db.WithContext(ctx).Save(topic).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Topic already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

// Delete removes a topic and its article associations. Articles keep their
// other topics.
func (r *topicRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "topics")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_topics WHERE topic_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Topic{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

// Reconcile makes the article's topic set match names exactly, inside one
// transaction. Names are matched against the owner's existing topics and
// created when missing; topics detached here are never deleted, so they
// stay available for the owner's other articles.
func (r *topicRepository) Reconcile(ctx context.Context, article *models.Article, names []string, userID uint) error {
	defer observability.TrackQuery("reconcile", "topics")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		topics := make([]*models.Topic, 0, len(names))
		seen := make(map[string]bool, len(names))
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			var topic models.Topic
			err := tx.Where("user_id = ? AND name = ?", userID, name).First(&topic).Error
			switch {
			case err == nil:
			case errors.Is(err, gorm.ErrRecordNotFound):
				topic = models.Topic{Name: name, UserID: userID}
				if err := tx.Create(&topic).Error; err != nil {
					return err
				}
			default:
				return err
			}
			topics = append(topics, &topic)
		}

		assoc := tx.Model(article).Association("Topics")
		if len(topics) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(topics)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}
