// Package server exposes protocol sessions over HTTP and websockets.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Server routes requests to a Manager.
type Server struct {
	app     *fiber.App
	manager *Manager
	logger  *zap.Logger
}

// New builds the fiber app and its routes.
func New(manager *Manager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		app:     fiber.New(fiber.Config{DisableStartupMessage: true}),
		manager: manager,
		logger:  logger,
	}

	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	s.app.Use(s.logRequests)

	api := s.app.Group("/api")
	api.Post("/games", s.createGame)
	api.Get("/games/:id", s.getGame)
	api.Post("/games/:id/commands", s.execCommand)
	api.Delete("/games/:id", s.deleteGame)
	api.Get("/stats", s.getStats)

	s.app.Use("/ws", s.requireUpgrade)
	s.app.Get("/ws/games/:id", websocket.New(s.handleConn))

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for open requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return err
}

type createRequest struct {
	Color string `json:"color"`
}

type commandRequest struct {
	Command string `json:"command"`
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	id, err := s.manager.Create(req.Color)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"game_id": id,
	})
}

func (s *Server) getGame(c *fiber.Ctx) error {
	state, err := s.manager.State(c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(state)
}

func (s *Server) execCommand(c *fiber.Ctx) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	resp, err := s.manager.Exec(c.Params("id"), req.Command)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"response": resp,
	})
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.manager.Delete(c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) getStats(c *fiber.Ctx) error {
	stats, err := s.manager.Stats()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(stats)
}

// fail maps an error to a JSON error response.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrGameNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrInvalidColor):
		status = fiber.StatusBadRequest
	default:
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
