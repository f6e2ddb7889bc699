package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/emodesk/deskbot/pkg/hub"
)

// handleState returns the bot's current state.
func (s *Server) handleState(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleConversation returns the recent conversation feed.
func (s *Server) handleConversation(c *fiber.Ctx) error {
	s.conversationMu.RLock()
	defer s.conversationMu.RUnlock()
	return c.JSON(s.conversation)
}

// handleStateWS streams state updates. The current state is sent on
// connect so the dashboard renders immediately.
func (s *Server) handleStateWS(c *websocket.Conn) {
	s.stateMu.RLock()
	c.WriteJSON(s.state)
	s.stateMu.RUnlock()

	client := hub.NewClient(s.stateHub, c)
	client.Run()
}

// handleConversationWS streams conversation turns, replaying the
// buffer on connect.
func (s *Server) handleConversationWS(c *websocket.Conn) {
	s.conversationMu.RLock()
	for _, entry := range s.conversation {
		c.WriteJSON(entry)
	}
	s.conversationMu.RUnlock()

	client := hub.NewClient(s.conversationHub, c)
	client.Run()
}
