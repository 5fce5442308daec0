package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authData is the payload of successful signup and login responses.
type authData struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

func (s *HTTPServer) signup(c *fiber.Ctx) error {

	s.logger.Info(c.UserContext(), "Signup request")

	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, codeValidationError, "invalid request body")
	}

	result, err := s.users.Signup(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	s.logger.Info(c.UserContext(), "Registered", "email", req.Email)

	return respondSuccess(c, fiber.StatusCreated,
		authData{User: toUserDTO(result.User), Token: result.Token},
		"User registered successfully")
}

func (s *HTTPServer) login(c *fiber.Ctx) error {

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, codeValidationError, "invalid request body")
	}

	result, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	s.logger.Info(c.UserContext(), "Logged in", "email", req.Email)

	return respondSuccess(c, fiber.StatusOK,
		authData{User: toUserDTO(result.User), Token: result.Token},
		"Login successful")
}

// logout succeeds whether or not a token accompanies the request. Tokens
// are stateless, so there is no session to destroy server-side.
func (s *HTTPServer) logout(c *fiber.Ctx) error {

	if err := s.users.Logout(c.UserContext(), bearerToken(c)); err != nil {
		return s.respondServiceError(c, err)
	}

	return respondSuccess(c, fiber.StatusOK, nil, "Logout successful")
}

// bearerToken returns the token part of the Authorization header, or ""
// when the header is absent or not a bearer scheme.
func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(common.AuthorizationHeaderName), " ", 2)
	if len(parts) != 2 || parts[0] != common.BearerSchema {
		return ""
	}
	return parts[1]
}
