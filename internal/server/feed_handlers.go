package server

import (
	"quill/internal/models"
	"quill/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
//
// The feed lists every user's articles as summaries, optionally filtered by
// free-text search (title, owner name, topic names) and ordered by
// likes_count or created_at. Pages are fixed at seven items; pages past the
// end are empty, not errors.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	q, err := s.parseFeedQuery(c)
	if err != nil {
		return nil
	}

	articles, err := s.articleService.Feed(c.UserContext(), q)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":      q.Page,
		"page_size": repository.FeedPageSize,
		"articles":  newArticleSummaries(articles),
	})
}

// GetFeedArticle handles GET /api/feed/:id
//
// Reading a single article through the feed requires an authenticated
// reader, unlike the listing.
func (s *Server) GetFeedArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleService.GetArticle(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(newArticleDetail(article))
}
