package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Error codes carried in the error envelope. Stable strings: clients
// branch on them.
const (
	codeDuplicateEmail     = "DUPLICATE_EMAIL"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeMissingToken       = "MISSING_TOKEN"
	codeInvalidToken       = "INVALID_TOKEN"
	codeNotFound           = "NOT_FOUND"
	codeValidationError    = "VALIDATION_ERROR"
	codeInternalError      = "INTERNAL_ERROR"
)

// successEnvelope wraps every successful response. Data may be null,
// message may be empty, but both keys are always present.
type successEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}

func respondSuccess(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(successEnvelope{Success: true, Data: data, Message: message})
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorEnvelope{Success: false, Error: errorDetail{Code: code, Message: message}})
}

// respondServiceError translates service-layer sentinel errors into the
// error envelope. Anything unrecognized is logged with detail and answered
// with a generic internal error, so driver messages never leak to clients.
func (s *HTTPServer) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return respondError(c, fiber.StatusBadRequest, codeValidationError, err.Error())
	case errors.Is(err, common.ErrDuplicateEmail):
		return respondError(c, fiber.StatusBadRequest, codeDuplicateEmail, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, codeInvalidCredentials, err.Error())
	case errors.Is(err, common.ErrMissingToken):
		return respondError(c, fiber.StatusUnauthorized, codeMissingToken, err.Error())
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
		return respondError(c, fiber.StatusUnauthorized, codeInvalidToken, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrorNotFound):
		return respondError(c, fiber.StatusNotFound, codeNotFound, "task not found")
	default:
		s.logger.Error(c.UserContext(), err.Error())
		return respondError(c, fiber.StatusInternalServerError, codeInternalError, "internal server error")
	}
}

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type taskDTO struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTaskDTO(t *models.Task) taskDTO {
	return taskDTO{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskDTOs(list []*models.Task) []taskDTO {
	result := make([]taskDTO, 0, len(list))
	for _, t := range list {
		result = append(result, toTaskDTO(t))
	}
	return result
}
