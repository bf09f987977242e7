package stream

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const KindReady = "stream.ready"

// RegisterRoutes serves the websocket stream of topic at /ws. A stream.ready
// event is written once the client is registered.
func RegisterRoutes(r fiber.Router, hub *Hub, topic string) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		client := hub.Register(topic)
		defer hub.Unregister(client)

		ready, _ := json.Marshal(NewEvent(KindReady, fiber.Map{"topic": topic}))
		if err := c.WriteMessage(websocket.TextMessage, ready); err != nil {
			return
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}))
}
