package server

import (
	"time"

	"quill/internal/models"
)

// UserResponse is the public user representation. The password hash never
// serializes, but this keeps email and timestamps out of nested payloads too.
type UserResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Bio       string `json:"bio,omitempty"`
	ContactMe string `json:"contact_me,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// AuthorResponse is the trimmed owner block embedded in articles and comments.
type AuthorResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar,omitempty"`
}

// ArticleSummary is the feed list item: metadata and counts, no body text
// beyond the opening and no comments.
type ArticleSummary struct {
	ID         uint           `json:"id"`
	Title      string         `json:"title"`
	Opening    string         `json:"opening"`
	ImageURL   string         `json:"image_url,omitempty"`
	User       AuthorResponse `json:"user"`
	Topics     []TopicItem    `json:"topics"`
	LikesCount int            `json:"likes_count"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ArticleDetail is the full single-article representation.
type ArticleDetail struct {
	ArticleSummary
	Content   string            `json:"content"`
	Comments  []CommentResponse `json:"comments"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type TopicItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CommentResponse struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	User      AuthorResponse `json:"user"`
	ArticleID uint           `json:"article_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type LikeResponse struct {
	ID        uint           `json:"id"`
	User      AuthorResponse `json:"user"`
	ArticleID uint           `json:"article_id"`
	CreatedAt time.Time      `json:"created_at"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Bio:       u.Bio,
		ContactMe: u.ContactMe,
		Avatar:    u.Avatar,
	}
}

func newAuthorResponse(u models.User) AuthorResponse {
	return AuthorResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}

func newTopicItems(topics []models.Topic) []TopicItem {
	items := make([]TopicItem, 0, len(topics))
	for _, t := range topics {
		items = append(items, TopicItem{ID: t.ID, Name: t.Name})
	}
	return items
}

func newArticleSummary(a *models.Article) ArticleSummary {
	return ArticleSummary{
		ID:         a.ID,
		Title:      a.Title,
		Opening:    a.Opening,
		ImageURL:   a.ImageURL,
		User:       newAuthorResponse(a.User),
		Topics:     newTopicItems(a.Topics),
		LikesCount: a.LikesCount,
		CreatedAt:  a.CreatedAt,
	}
}

func newArticleSummaries(articles []*models.Article) []ArticleSummary {
	out := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		out = append(out, newArticleSummary(a))
	}
	return out
}

func newArticleDetail(a *models.Article) ArticleDetail {
	return ArticleDetail{
		ArticleSummary: newArticleSummary(a),
		Content:        a.Content,
		Comments:       newCommentResponsesFromValues(a.Comments),
		UpdatedAt:      a.UpdatedAt,
	}
}

func newCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		User:      newAuthorResponse(c.User),
		ArticleID: c.ArticleID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newCommentResponses(comments []*models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, newCommentResponse(c))
	}
	return out
}

func newCommentResponsesFromValues(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(&comments[i]))
	}
	return out
}

func newLikeResponses(likes []*models.Like) []LikeResponse {
	out := make([]LikeResponse, 0, len(likes))
	for _, l := range likes {
		out = append(out, LikeResponse{
			ID:        l.ID,
			User:      newAuthorResponse(l.User),
			ArticleID: l.ArticleID,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
