package handler

import (
	"context"
	"os"
	"strings"

	"payment-support-be/internal/pkg/logger"
	internalWS "payment-support-be/internal/websocket"
	"payment-support-be/pkg/events"
	pkgNats "payment-support-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ChatEventHandler bridges chat lifecycle events from NATS onto user
// websocket connections.
type ChatEventHandler struct {
	subscriber *pkgNats.Subscriber
	hub        *internalWS.Hub
	logger     logger.ILogger
}

func NewChatEventHandler(subscriber *pkgNats.Subscriber, hub *internalWS.Hub, log logger.ILogger) *ChatEventHandler {
	return &ChatEventHandler{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

// StartEventBridge subscribes to chat turn events and fans them out to
// the owning user's websocket connections.
func (h *ChatEventHandler) StartEventBridge() error {
	if h.subscriber == nil {
		h.logger.Warn("ChatEventHandler", "NATS subscriber not configured, event bridge disabled", nil)
		return nil
	}

	return h.subscriber.Subscribe("events.CHAT_TURN_COMPLETED", "chat-ws-bridge", func(ctx context.Context, event events.Event) error {
		payload := event.Payload()

		userIDRaw, ok := payload["user_id"].(string)
		if !ok {
			h.logger.Warn("ChatEventHandler", "Event missing user_id, dropping", map[string]interface{}{"subject": event.EventType()})
			return nil
		}
		userID, err := uuid.Parse(userIDRaw)
		if err != nil {
			h.logger.Warn("ChatEventHandler", "Invalid user_id in event, dropping", map[string]interface{}{"user_id": userIDRaw})
			return nil
		}

		eventType := event.EventType()
		if idx := strings.LastIndex(eventType, "."); idx >= 0 {
			eventType = eventType[idx+1:]
		}

		h.hub.Send(userID, internalWS.Event{
			Type: eventType,
			Data: payload,
		})
		return nil
	})
}

// ServeWs handles websocket requests from the peer.
func (h *ChatEventHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("ChatEventHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatEventHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("ChatEventHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket endpoint.
func (h *ChatEventHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
