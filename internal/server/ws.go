package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// requireUpgrade rejects plain HTTP requests to websocket routes.
func (s *Server) requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// handleConn runs protocol commands received as text frames, answering
// each with one text frame.
func (s *Server) handleConn(c *websocket.Conn) {
	id := c.Params("id")
	logger := s.logger.With(zap.String("game_id", id))

	if _, err := s.manager.State(id); err != nil {
		logger.Info("websocket for unknown game", zap.Error(err))
		c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseUnsupportedData, err.Error()))
		c.Close()
		return
	}
	logger.Debug("websocket connected")

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("websocket closed", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		resp, err := s.manager.Exec(id, string(message))
		if err != nil {
			logger.Error("command failed", zap.Error(err))
			if resp == "" {
				return
			}
		}
		if err := c.WriteMessage(websocket.TextMessage, []byte(resp)); err != nil {
			logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}
