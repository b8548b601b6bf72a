package policy

import (
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	article := &models.Article{UserID: 7}
	comment := &models.Comment{UserID: 3, ArticleID: 1}

	tests := []struct {
		name     string
		actorID  uint
		action   Action
		obj      Owned
		expected Decision
	}{
		{"owner can update", 7, ActionUpdate, article, Allow},
		{"owner can delete", 7, ActionDelete, article, Allow},
		{"non-owner cannot update", 8, ActionUpdate, article, Deny},
		{"non-owner cannot delete", 8, ActionDelete, article, Deny},
		{"anonymous cannot update", AnonymousID, ActionUpdate, article, Deny},
		{"anonymous can read", AnonymousID, ActionRead, article, Allow},
		{"non-owner can read", 8, ActionRead, article, Allow},
		{"comment authorizes against commenter not article owner", 3, ActionDelete, comment, Allow},
		{"article owner cannot delete another user's comment", 7, ActionDelete, comment, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.actorID, tt.action, tt.obj))
		})
	}
}

func TestAuthorizeErrorKinds(t *testing.T) {
	article := &models.Article{UserID: 7}

	assert.NoError(t, Authorize(7, ActionUpdate, article))

	err := Authorize(8, ActionDelete, article)
	assert.Error(t, err)
	appErr, ok := err.(*models.AppError)
	assert.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	err = Authorize(AnonymousID, ActionUpdate, article)
	assert.Error(t, err)
	appErr, ok = err.(*models.AppError)
	assert.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
