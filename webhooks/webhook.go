package webhooks

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"messenger-bot/config"
	"messenger-bot/middleware"
)

// Emitter receives classified messaging events. The bot package provides
// the implementation; the indirection keeps route registration free of an
// import cycle.
type Emitter interface {
	Emit(event EventType, m Messaging)
}

// RegisterRoutes mounts the verification and event-delivery handlers on
// the configured endpoint.
func RegisterRoutes(app *fiber.App, cfg *config.Config, emitter Emitter) {
	// Webhook verification endpoint
	app.Get(cfg.Endpoint, verifyWebhook(cfg))

	// Webhook event handler
	app.Post(cfg.Endpoint, middleware.VerifySignature(cfg.AppSecret), handleWebhookEvent(emitter))
}

// verifyWebhook handles the Facebook webhook subscription handshake. The
// challenge is echoed back verbatim on success.
func verifyWebhook(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := c.Query("hub.mode")
		token := c.Query("hub.verify_token")
		challenge := c.Query("hub.challenge")

		if mode == "" || token == "" {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		if mode == "subscribe" && token == cfg.VerifyToken {
			slog.Info("Webhook verified successfully")
			return c.SendString(challenge)
		}

		slog.Warn("Webhook verification failed", "mode", mode, "token", token)
		return c.SendStatus(fiber.StatusForbidden)
	}
}

// handleWebhookEvent processes incoming webhook events. The envelope is
// validated inline; classification and emission run in a goroutine so the
// 200 acknowledgment is never delayed by listener work.
func handleWebhookEvent(emitter Emitter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Envelope
		if err := c.BodyParser(&body); err != nil {
			slog.Error("Failed to parse webhook body", "error", err)
			return c.SendStatus(fiber.StatusBadRequest)
		}

		// Only process page events
		if body.Object != "page" {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		// Process webhook asynchronously
		dispatchAsync(body, emitter)

		// Return immediately to Facebook
		return c.SendStatus(fiber.StatusOK)
	}
}

// dispatchAsync hands the envelope off without blocking the 200
// acknowledgment. Tests swap it for a synchronous version.
var dispatchAsync = func(body Envelope, emitter Emitter) {
	go dispatchEnvelope(body, emitter)
}

// dispatchEnvelope classifies every messaging event in the envelope and
// hands it to the emitter. The whole messaging array of each entry is
// processed, since Facebook batches events per entry.
func dispatchEnvelope(body Envelope, emitter Emitter) {
	for _, entry := range body.Entry {
		for _, m := range entry.Messaging {
			event := Classify(m)
			slog.Debug("Dispatching webhook event",
				"event", event,
				"senderID", m.Sender.ID,
				"pageID", entry.ID,
			)
			emitter.Emit(event, m)
		}
	}
}
