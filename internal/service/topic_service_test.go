package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedTopicStub() *topicRepoStub {
	return &topicRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Topic, error) {
			return &models.Topic{ID: id, Name: "go", UserID: 7}, nil
		},
		updateFn: func(_ context.Context, _ *models.Topic) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func TestTopicServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner renames", func(t *testing.T) {
		svc := NewTopicService(ownedTopicStub())
		topic, err := svc.UpdateTopic(ctx, UpdateTopicInput{UserID: 7, TopicID: 1, Name: " golang "})
		require.NoError(t, err)
		assert.Equal(t, "golang", topic.Name)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc := NewTopicService(ownedTopicStub())
		_, err := svc.UpdateTopic(ctx, UpdateTopicInput{UserID: 8, TopicID: 1, Name: "golang"})
		assertAppErrorCode(t, err, models.ErrCodeForbidden)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := NewTopicService(ownedTopicStub())
		_, err := svc.UpdateTopic(ctx, UpdateTopicInput{UserID: 7, TopicID: 1, Name: "  "})
		assertAppErrorCode(t, err, models.ErrCodeValidation)
	})
}

func TestTopicServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc := NewTopicService(ownedTopicStub())
		err := svc.DeleteTopic(ctx, 8, 1)
		assertAppErrorCode(t, err, models.ErrCodeForbidden)
	})

	t.Run("owner deletes", func(t *testing.T) {
		svc := NewTopicService(ownedTopicStub())
		assert.NoError(t, svc.DeleteTopic(ctx, 7, 1))
	})
}
