package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/articles/:id/comments
//
// Public: anyone can read an article's comments, paginated newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 5)

	comments, err := s.commentService.ListComments(c.UserContext(), articleID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"comments": newCommentResponses(comments)})
}

// CreateComment handles POST /api/articles/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:    userID,
		ArticleID: articleID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCommentResponse(comment))
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), commentID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(newCommentResponse(comment))
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(newCommentResponse(comment))
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), userID, commentID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
