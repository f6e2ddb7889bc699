// Package web serves a small real-time dashboard for the deskbot:
// live bot state over REST and websocket, plus the rolling
// conversation feed.
package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/emodesk/deskbot/pkg/hub"
)

// BotState is the dashboard's view of the bot.
type BotState struct {
	Listening       bool   `json:"listening"`
	Speaking        bool   `json:"speaking"`
	Mood            string `json:"mood"`
	DeviceConnected bool   `json:"device_connected"`
	LastUserMessage string `json:"last_user_message"`
	LastBotMessage  string `json:"last_bot_message"`
	Turns           int    `json:"turns"`
}

// ConversationEntry is one turn shown in the dashboard feed.
type ConversationEntry struct {
	Time    string `json:"time"`
	Role    string `json:"role"` // user, bot
	Message string `json:"message"`
}

// maxConversationEntries bounds the dashboard feed buffer. The bot's
// own transcript is unbounded; this buffer is only for display.
const maxConversationEntries = 100

// Server is the dashboard server.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	state   BotState
	stateMu sync.RWMutex

	conversation   []ConversationEntry
	conversationMu sync.RWMutex

	stateHub        *hub.Hub
	conversationHub *hub.Hub
}

// NewServer creates the dashboard server listening on port.
func NewServer(port string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		port:            port,
		logger:          logger.With("component", "web"),
		state:           BotState{Mood: "neutral"},
		conversation:    make([]ConversationEntry, 0, maxConversationEntries),
		stateHub:        hub.New("state", logger),
		conversationHub: hub.New("conversation", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Deskbot Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/conversation", s.handleConversation)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/state", websocket.New(s.handleStateWS))
	app.Get("/ws/conversation", websocket.New(s.handleConversationWS))

	s.app = app
	return s
}

// Start runs the server, blocking.
func (s *Server) Start() error {
	s.logger.Info("dashboard listening", "url", "http://localhost:"+s.port)

	go s.stateHub.Run()
	go s.conversationHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync runs the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("dashboard server failed", "error", err)
		}
	}()
}

// UpdateState applies a mutation to the bot state and broadcasts the
// result to connected dashboards.
func (s *Server) UpdateState(update func(*BotState)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state
	s.stateMu.Unlock()

	s.stateHub.BroadcastJSON(state)
}

// AddConversation appends a turn to the feed and broadcasts it.
func (s *Server) AddConversation(role, message string) {
	entry := ConversationEntry{
		Time:    time.Now().Format("15:04:05"),
		Role:    role,
		Message: message,
	}

	s.conversationMu.Lock()
	s.conversation = append(s.conversation, entry)
	if len(s.conversation) > maxConversationEntries {
		s.conversation = s.conversation[1:]
	}
	s.conversationMu.Unlock()

	s.conversationHub.BroadcastJSON(entry)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
