package server

import (
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetLikes handles GET /api/articles/:id/likes
func (s *Server) GetLikes(c *fiber.Ctx) error {
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.likeService.ListLikes(c.UserContext(), articleID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"count": len(likes),
		"likes": newLikeResponses(likes),
	})
}

// LikeArticle handles POST /api/articles/:id/likes
//
// Liking an already-liked article answers 409; the database uniqueness
// constraint decides, so concurrent double-taps cannot slip through.
func (s *Server) LikeArticle(c *fiber.Ctx) error {
	userID := currentUserID(c)
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	like, err := s.likeService.LikeArticle(c.UserContext(), userID, articleID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         like.ID,
		"article_id": like.ArticleID,
		"user_id":    like.UserID,
		"created_at": like.CreatedAt,
	})
}

// UnlikeArticle handles DELETE /api/articles/:id/likes
//
// Removing a like that does not exist answers 404.
func (s *Server) UnlikeArticle(c *fiber.Ctx) error {
	userID := currentUserID(c)
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.UnlikeArticle(c.UserContext(), userID, articleID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
