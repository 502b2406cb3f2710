package handler

import (
	"os"
	"strings"

	"mathclicks-be/internal/pkg/logger"
	internalWS "mathclicks-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// MonitorHandler upgrades teacher monitor connections. A monitor token (from
// /api/class/token) is required and must carry the class code being watched.
type MonitorHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewMonitorHandler(hub *internalWS.Hub, log logger.ILogger) *MonitorHandler {
	return &MonitorHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *MonitorHandler) ServeWs(c *fiber.Ctx) error {
	classCode := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if classCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing class code"})
	}

	// Token source priority: query param (browser standard), then header.
	tokenStr := c.Query("token")
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
		h.logger.Warn("MonitorHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	tokenCode, ok := claims["class_code"].(string)
	if !ok || !strings.EqualFold(tokenCode, classCode) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Token is not valid for this class"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("MonitorHandler", "Monitor session started", map[string]interface{}{"class_code": classCode})
			internalWS.ServeWs(h.hub, conn, classCode)
			h.logger.Info("MonitorHandler", "Monitor session ended", map[string]interface{}{"class_code": classCode})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the monitor websocket route.
func (h *MonitorHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/class/:code/ws", h.ServeWs)
}
