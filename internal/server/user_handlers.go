package server

import (
	"io"

	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Bio       *string `json:"bio"`
		ContactMe *string `json:"contact_me"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if req.FirstName != nil {
		name, nameErr := validation.NormalizeName(*req.FirstName)
		if nameErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(nameErr.Error()))
		}
		user.FirstName = name
	}
	if req.LastName != nil {
		name, nameErr := validation.NormalizeName(*req.LastName)
		if nameErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(nameErr.Error()))
		}
		user.LastName = name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ContactMe != nil {
		user.ContactMe = *req.ContactMe
	}

	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

// UpdateMyAvatar handles PUT /api/users/me/avatar
//
// Accepts a multipart "image" file; the stored avatar is always a square
// 200x200 WebP regardless of input dimensions.
func (s *Server) UpdateMyAvatar(c *fiber.Ctx) error {
	userID := currentUserID(c)

	content, contentType, filename, err := readMultipartImage(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	url, err := s.imageService.ProcessAvatar(service.UploadImageInput{
		UserID:      userID,
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	user.Avatar = url
	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

// readMultipartImage pulls the "image" part out of a multipart form.
func readMultipartImage(c *fiber.Ctx) ([]byte, string, string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "", "", models.NewValidationError("Image file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", "", models.NewInternalError(err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", "", models.NewInternalError(err)
	}
	return content, fileHeader.Header.Get("Content-Type"), fileHeader.Filename, nil
}
