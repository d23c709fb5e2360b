package bot

import (
	"log/slog"

	"messenger-bot/webhooks"
)

// Handler is an application callback for one classified webhook event.
type Handler func(m webhooks.Messaging)

// emitter maps event kinds to ordered listener lists. Registration must
// happen before the bot starts; after that the registry is read-only, so
// no locking is needed.
type emitter struct {
	handlers map[webhooks.EventType][]Handler
}

func newEmitter() *emitter {
	return &emitter{handlers: make(map[webhooks.EventType][]Handler)}
}

func (e *emitter) on(event webhooks.EventType, h Handler) {
	e.handlers[event] = append(e.handlers[event], h)
}

// Emit invokes every listener registered for the event, in registration
// order. A panicking listener is recovered and logged so it cannot break
// the remaining listeners or the webhook response.
func (e *emitter) Emit(event webhooks.EventType, m webhooks.Messaging) {
	for _, h := range e.handlers[event] {
		invoke(event, h, m)
	}
}

func invoke(event webhooks.EventType, h Handler, m webhooks.Messaging) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event listener panicked", "event", event, "panic", r)
		}
	}()
	h(m)
}
