package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

type TopicService struct {
	topicRepo repository.TopicRepository
}

type UpdateTopicInput struct {
	UserID  uint
	TopicID uint
	Name    string
}

func NewTopicService(topicRepo repository.TopicRepository) *TopicService {
	return &TopicService{topicRepo: topicRepo}
}

// ListMyTopics returns the caller's own topic vocabulary. Topics are scoped
// per user, so there is no cross-user listing.
func (s *TopicService) ListMyTopics(ctx context.Context, userID uint) ([]*models.Topic, error) {
	return s.topicRepo.ListByUser(ctx, userID)
}

func (s *TopicService) GetTopic(ctx context.Context, id uint) (*models.Topic, error) {
	return s.topicRepo.GetByID(ctx, id)
}

func (s *TopicService) UpdateTopic(ctx context.Context, in UpdateTopicInput) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, in.TopicID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(in.UserID, policy.ActionUpdate, topic); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	topic.Name = name
	if err := s.topicRepo.Update(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// DeleteTopic removes a topic from the owner's vocabulary and detaches it
// from all their articles.
func (s *TopicService) DeleteTopic(ctx context.Context, userID, topicID uint) error {
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(userID, policy.ActionDelete, topic); err != nil {
		return err
	}
	return s.topicRepo.Delete(ctx, topicID)
}
