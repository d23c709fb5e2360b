// Package bot wires the webhook endpoints, the event listener registry
// and the Graph API senders into a single Messenger bot facade.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"messenger-bot/config"
	"messenger-bot/graph"
	"messenger-bot/messages"
	"messenger-bot/webhooks"
)

const maxTextMessageLength = 2000

// Identity is the bot's page identity, resolved lazily from the Graph
// API "me" endpoint after the server starts listening.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Bot receives webhook events and sends messages on behalf of one page.
type Bot struct {
	cfg     *config.Config
	app     *fiber.App
	client  *graph.Client
	emitter *emitter

	mu       sync.Mutex
	identity Identity
	started  bool
}

// New creates a Bot from the given configuration. Defaults are applied
// for unset optional fields; missing tokens are a configuration error.
// The bot works on its own copy, so the caller's struct is never
// mutated.
func New(cfg *config.Config) (*Bot, error) {
	c := *cfg
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bot configuration: %w", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	return &Bot{
		cfg:     &c,
		app:     app,
		client:  graph.NewClient(c.AccessToken, c.APIVersion),
		emitter: newEmitter(),
	}, nil
}

// Config returns a copy of the bot's effective configuration, with
// defaults applied.
func (b *Bot) Config() config.Config {
	return *b.cfg
}

// On registers a listener for an event kind. Listeners run in
// registration order; they must be registered before Start is called.
func (b *Bot) On(event webhooks.EventType, h Handler) {
	b.emitter.on(event, h)
}

// OnMessage registers a typed listener for plain message events.
func (b *Bot) OnMessage(h func(webhooks.MessageEvent)) {
	b.On(webhooks.EventMessage, func(m webhooks.Messaging) { h(m.MessageEvent()) })
}

// OnQuickReply registers a typed listener for quick reply events.
func (b *Bot) OnQuickReply(h func(webhooks.QuickReplyEvent)) {
	b.On(webhooks.EventQuickReply, func(m webhooks.Messaging) { h(m.QuickReplyEvent()) })
}

// OnEcho registers a typed listener for echo events.
func (b *Bot) OnEcho(h func(webhooks.EchoEvent)) {
	b.On(webhooks.EventEcho, func(m webhooks.Messaging) { h(m.EchoEvent()) })
}

// OnPostback registers a typed listener for postback events.
func (b *Bot) OnPostback(h func(webhooks.PostbackEvent)) {
	b.On(webhooks.EventPostback, func(m webhooks.Messaging) { h(m.PostbackEvent()) })
}

// OnTemplate registers a typed listener for template events.
func (b *Bot) OnTemplate(h func(webhooks.TemplateEvent)) {
	b.On(webhooks.EventTemplate, func(m webhooks.Messaging) { h(m.TemplateEvent()) })
}

// OnReferral registers a typed listener for referral events.
func (b *Bot) OnReferral(h func(webhooks.ReferralEvent)) {
	b.On(webhooks.EventReferral, func(m webhooks.Messaging) { h(m.ReferralEvent()) })
}

// Client exposes the underlying Graph API client for calls the
// convenience senders do not cover.
func (b *Bot) Client() *graph.Client {
	return b.client
}

// Identity returns the resolved page identity. Both fields are empty
// until resolution succeeds.
func (b *Bot) Identity() Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identity
}

// Start registers the webhook routes and binds the HTTP listener. It
// blocks until the server shuts down. Calling Start twice is an error.
func (b *Bot) Start() error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return fmt.Errorf("bot already started")
	}
	b.started = true
	b.mu.Unlock()

	webhooks.RegisterRoutes(b.app, b.cfg, b.emitter)

	b.app.Hooks().OnListen(func(fiber.ListenData) error {
		go b.announce()
		return nil
	})

	return b.app.Listen(fmt.Sprintf(":%d", b.cfg.Port))
}

// Shutdown gracefully stops the HTTP server.
func (b *Bot) Shutdown() error {
	return b.app.Shutdown()
}

// announce resolves the page identity once the listener is bound and
// logs the startup banner. Resolution failure is logged, never fatal.
func (b *Bot) announce() {
	if err := b.resolveIdentity(context.Background()); err != nil {
		slog.Error("Failed to resolve bot identity", "error", err)
	}

	identity := b.Identity()
	slog.Info("Bot is running",
		"name", identity.Name,
		"id", identity.ID,
		"port", b.cfg.Port,
		"endpoint", b.cfg.Endpoint,
	)
}

// resolveIdentity fetches the page id and name. Resolving twice is
// harmless; the last write wins.
func (b *Bot) resolveIdentity(ctx context.Context) error {
	var identity Identity
	if err := b.client.Get(ctx, "me", &identity); err != nil {
		return err
	}

	b.mu.Lock()
	b.identity = identity
	b.mu.Unlock()
	return nil
}

// SendMessage sends a pre-built message payload (for example a template
// or quick-replies builder) to a recipient.
func (b *Bot) SendMessage(ctx context.Context, recipientID string, message any) error {
	return b.client.Post(ctx, "me/messages", map[string]any{
		"recipient": map[string]string{"id": recipientID},
		"message":   message,
	}, nil)
}

// SendTextMessage sends a plain text message. Texts over 2,000
// characters are rejected before any network call.
func (b *Bot) SendTextMessage(ctx context.Context, recipientID, text string) error {
	if utf8.RuneCountInString(text) > maxTextMessageLength {
		return messages.ValidationError("message exceeds 2000 character limit")
	}
	return b.SendMessage(ctx, recipientID, map[string]string{"text": text})
}

// SendAttachment sends a media attachment by URL. The type must be one
// of image, video, audio or file; templates go through SendMessage.
func (b *Bot) SendAttachment(ctx context.Context, recipientID, attachmentType, url string, isReusable bool) error {
	switch attachmentType {
	case "image", "video", "audio", "file":
	default:
		return messages.ValidationError("attachment type must be image, video, audio or file")
	}
	return b.SendMessage(ctx, recipientID, map[string]any{
		"attachment": map[string]any{
			"type": attachmentType,
			"payload": map[string]any{
				"url":         url,
				"is_reusable": isReusable,
			},
		},
	})
}

// SetTyping turns the typing indicator on or off for a conversation.
func (b *Bot) SetTyping(ctx context.Context, recipientID string, isTyping bool) error {
	action := "typing_off"
	if isTyping {
		action = "typing_on"
	}
	return b.client.Post(ctx, "me/messages", map[string]any{
		"recipient":     map[string]string{"id": recipientID},
		"sender_action": action,
	}, nil)
}
