package webhooks

// EventType names the kind of a classified messaging event.
type EventType string

const (
	EventMessage    EventType = "message"
	EventQuickReply EventType = "quick_reply"
	EventEcho       EventType = "echo"
	EventPostback   EventType = "postback"
	EventTemplate   EventType = "template"
	EventReferral   EventType = "referral"
	EventUnknown    EventType = "unknown"
)

// Classify determines the event kind of a messaging event from its shape.
// The probe order is fixed: message (with quick_reply and is_echo taking
// precedence over a plain message), then postback, template and referral.
// An is_echo field counts as present even when it is false. Events that
// match nothing classify as EventUnknown; Classify never fails.
func Classify(m Messaging) EventType {
	switch {
	case m.Message != nil:
		switch {
		case m.Message.QuickReply != nil:
			return EventQuickReply
		case m.Message.IsEcho != nil:
			return EventEcho
		default:
			return EventMessage
		}
	case m.Postback != nil:
		return EventPostback
	case m.Template != nil:
		return EventTemplate
	case m.Referral != nil:
		return EventReferral
	default:
		return EventUnknown
	}
}
