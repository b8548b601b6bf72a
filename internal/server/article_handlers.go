package server

import (
	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type articlePayload struct {
	Title    *string               `json:"title"`
	Opening  *string               `json:"opening"`
	Content  *string               `json:"content"`
	ImageURL *string               `json:"image_url"`
	Topics   *[]service.TopicInput `json:"topics"`
}

// CreateArticle handles POST /api/articles
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req articlePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateArticleInput{UserID: userID}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Opening != nil {
		in.Opening = *req.Opening
	}
	if req.Content != nil {
		in.Content = *req.Content
	}
	if req.ImageURL != nil {
		in.ImageURL = *req.ImageURL
	}
	if req.Topics != nil {
		in.Topics = *req.Topics
	}

	article, err := s.articleService.CreateArticle(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newArticleDetail(article))
}

// GetMyArticles handles GET /api/articles
//
// Lists only the caller's own articles, newest first.
func (s *Server) GetMyArticles(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c, 10)

	articles, err := s.articleService.ListMyArticles(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"articles": newArticleSummaries(articles)})
}

// GetMyArticle handles GET /api/articles/:id
func (s *Server) GetMyArticle(c *fiber.Ctx) error {
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

// UpdateArticle handles PUT /api/articles/:id
//
// A topics field that is absent leaves the article's topics untouched; an
// empty array detaches them all.
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req articlePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.UpdateArticle(c.UserContext(), service.UpdateArticleInput{
		UserID:    userID,
		ArticleID: id,
		Title:     req.Title,
		Opening:   req.Opening,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Topics:    req.Topics,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(newArticleDetail(article))
}

// DeleteArticle handles DELETE /api/articles/:id
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.articleService.DeleteArticle(c.UserContext(), userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadArticleImage handles PUT /api/articles/:id/image
//
// Accepts a multipart "image" file, normalizes it and attaches the stored
// URL to the article. Only the owner may change the image; the check runs
// before any processing so rejected uploads leave nothing on disk.
func (s *Server) UploadArticleImage(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleService.GetArticle(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if err := policy.Authorize(userID, policy.ActionUpdate, article); err != nil {
		return models.RespondWithAppError(c, err)
	}

	content, contentType, filename, err := readMultipartImage(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	url, err := s.imageService.ProcessArticleImage(service.UploadImageInput{
		UserID:      userID,
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	article, err = s.articleService.UpdateArticle(c.UserContext(), service.UpdateArticleInput{
		UserID:    userID,
		ArticleID: id,
		ImageURL:  &url,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(newArticleDetail(article))
}
