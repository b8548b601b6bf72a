package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyTopics handles GET /api/topics
func (s *Server) GetMyTopics(c *fiber.Ctx) error {
	userID := currentUserID(c)

	topics, err := s.topicService.ListMyTopics(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"topics": topics})
}

// GetTopic handles GET /api/topics/:id
func (s *Server) GetTopic(c *fiber.Ctx) error {
	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	topic, err := s.topicService.GetTopic(c.UserContext(), topicID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(topic)
}

// UpdateTopic handles PUT /api/topics/:id
//
// Renaming a topic changes it on every article it is attached to. Only the
// owner may rename.
func (s *Server) UpdateTopic(c *fiber.Ctx) error {
	userID := currentUserID(c)
	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	topic, err := s.topicService.UpdateTopic(c.UserContext(), service.UpdateTopicInput{
		UserID:  userID,
		TopicID: topicID,
		Name:    req.Name,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(topic)
}

// DeleteTopic handles DELETE /api/topics/:id
func (s *Server) DeleteTopic(c *fiber.Ctx) error {
	userID := currentUserID(c)
	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.topicService.DeleteTopic(c.UserContext(), userID, topicID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
