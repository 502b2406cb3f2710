package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches an upgraded connection to the hub and blocks until the
// monitor disconnects.
func ServeWs(hub *Hub, c *websocket.Conn, classCode string) {
	client := &Client{Hub: hub, Conn: c, ClassCode: classCode, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
