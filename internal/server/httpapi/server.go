// Package httpapi exposes the task manager over HTTP/JSON: auth endpoints,
// bearer-token middleware and owner-scoped task CRUD, all wrapped in the
// uniform response envelope.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address      string
	allowOrigins string
	users        *services.UserService
	tasks        *services.TaskService
	logger       logging.Logger
	jwtSecret    []byte
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ts *services.TaskService, secretKey string, allowOrigins string) (*HTTPServer, error) {
	return &HTTPServer{
		address:      a,
		allowOrigins: allowOrigins,
		logger:       l.With("module", "http_server"),
		users:        us,
		tasks:        ts,
		jwtSecret:    []byte(secretKey),
	}, nil
}

// router builds the Fiber application with all routes registered. Kept
// separate from Run so tests can drive it through app.Test without
// binding a socket.
func (s *HTTPServer) router() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/", s.root)
	app.Get("/health", s.health)

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", s.signup)
	authRoutes.Post("/login", s.login)
	authRoutes.Post("/logout", s.logout)

	taskRoutes := api.Group("/tasks", s.bearerAuth)
	taskRoutes.Post("/", s.createTask)
	taskRoutes.Get("/", s.listTasks)
	taskRoutes.Get("/:id", s.getTask)
	taskRoutes.Put("/:id", s.updateTask)
	taskRoutes.Patch("/:id/complete", s.toggleTask)
	taskRoutes.Delete("/:id", s.deleteTask)

	return app
}

func (s *HTTPServer) Run(ctx context.Context) error {

	app := s.router()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	// starts accepting incoming connections
	if err := app.Listen(s.address); err != nil {
		return err
	}

	return nil
}

func (s *HTTPServer) root(c *fiber.Ctx) error {
	return respondSuccess(c, fiber.StatusOK, nil, "Todo API is running")
}

func (s *HTTPServer) health(c *fiber.Ctx) error {
	return respondSuccess(c, fiber.StatusOK, fiber.Map{"status": "healthy", "service": "todo-api"}, "")
}
