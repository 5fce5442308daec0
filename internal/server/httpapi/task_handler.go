package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// updateTaskRequest uses pointers so an omitted field can be told apart
// from an explicit zero value; only supplied fields are changed.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type toggleTaskRequest struct {
	Completed bool `json:"completed"`
}

type taskListData struct {
	Tasks []taskDTO `json:"tasks"`
}

func (s *HTTPServer) createTask(c *fiber.Ctx) error {

	identity := identityFromCtx(c)
	if identity == nil {
		return respondError(c, fiber.StatusUnauthorized, codeInvalidToken, common.ErrInvalidToken.Error())
	}

	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, codeValidationError, "invalid request body")
	}

	task, err := s.tasks.Create(c.UserContext(), identity.UserID, req.Title, req.Description)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return respondSuccess(c, fiber.StatusCreated, toTaskDTO(task), "")
}

func (s *HTTPServer) listTasks(c *fiber.Ctx) error {

	identity := identityFromCtx(c)
	if identity == nil {
		return respondError(c, fiber.StatusUnauthorized, codeInvalidToken, common.ErrInvalidToken.Error())
	}

	list, err := s.tasks.List(c.UserContext(), identity.UserID, c.Query("status_filter"))
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, taskListData{Tasks: toTaskDTOs(list)}, "")
}

func (s *HTTPServer) getTask(c *fiber.Ctx) error {

	identity := identityFromCtx(c)
	if identity == nil {
		return respondError(c, fiber.StatusUnauthorized, codeInvalidToken, common.ErrInvalidToken.Error())
	}

	id, err := taskID(c)
	if err != nil {
		return respondError(c, fiber.StatusNotFound, codeNotFound, "task not found")
	}

	task, err := s.tasks.Get(c.UserContext(), identity.UserID, id)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, toTaskDTO(task), "")
}

func (s *HTTPServer) updateTask(c *fiber.Ctx) error {

	identity := identityFromCtx(c)
	if identity == nil {
		return respondError(c, fiber.StatusUnauthorized, codeInvalidToken, common.ErrInvalidToken.Error())
	}

	id, err := taskID(c)
	if err != nil {
		return respondError(c, fiber.StatusNotFound, codeNotFound, "task not found")
	}

	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, codeValidationError, "invalid request body")
	}

	task, err := s.tasks.Update(c.UserContext(), identity.UserID, id, models.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, toTaskDTO(task), "")
}

func (s *HTTPServer) toggleTask(c *fiber.Ctx) error {

	identity := identityFromCtx(c)
	if identity == nil {
		return respondError(c, fiber.StatusUnauthorized, codeInvalidToken, common.ErrInvalidToken.Error())
	}

	id, err := taskID(c)
	if err != nil {
		return respondError(c, fiber.StatusNotFound, codeNotFound, "task not found")
	}

	var req toggleTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, codeValidationError, "invalid request body")
	}

	task, err := s.tasks.ToggleComplete(c.UserContext(), identity.UserID, id, req.Completed)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, toTaskDTO(task), "")
}

func (s *HTTPServer) deleteTask(c *fiber.Ctx) error {

	identity := identityFromCtx(c)
	if identity == nil {
		return respondError(c, fiber.StatusUnauthorized, codeInvalidToken, common.ErrInvalidToken.Error())
	}

	id, err := taskID(c)
	if err != nil {
		return respondError(c, fiber.StatusNotFound, codeNotFound, "task not found")
	}

	if err := s.tasks.Delete(c.UserContext(), identity.UserID, id); err != nil {
		return s.respondServiceError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, nil, "Task deleted successfully")
}

// taskID parses the :id path segment. Callers answer a parse failure with
// 404: a non-numeric id can never name an existing task, and the not-found
// unification already treats "cannot be yours" the same as "does not exist".
func taskID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
