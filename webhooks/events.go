package webhooks

// Event is the base every webhook event shares.
type Event struct {
	Sender    User
	Recipient User
	Timestamp int64
}

// MessageEvent is a plain message from a user.
type MessageEvent struct {
	Event
	Message Message
}

// QuickReplyEvent is a tapped quick reply. QuickReply is always
// populated.
type QuickReplyEvent struct {
	Event
	Message    Message
	QuickReply QuickReply
}

// EchoEvent is a message the page itself sent, echoed back by the
// platform.
type EchoEvent struct {
	Event
	Message Message
	IsEcho  bool
}

// PostbackEvent is a tapped postback button.
type PostbackEvent struct {
	Event
	Postback Postback
}

// TemplateEvent is a template delivery notification.
type TemplateEvent struct {
	Event
	Template Template
}

// ReferralEvent describes how a user reached the bot.
type ReferralEvent struct {
	Event
	Referral Referral
}

func (m Messaging) base() Event {
	return Event{Sender: m.Sender, Recipient: m.Recipient, Timestamp: m.Timestamp}
}

// MessageEvent converts the raw event into its typed form. Conversions
// are total: absent fields yield zero values.
func (m Messaging) MessageEvent() MessageEvent {
	e := MessageEvent{Event: m.base()}
	if m.Message != nil {
		e.Message = *m.Message
	}
	return e
}

// QuickReplyEvent converts the raw event into its typed form.
func (m Messaging) QuickReplyEvent() QuickReplyEvent {
	e := QuickReplyEvent{Event: m.base()}
	if m.Message != nil {
		e.Message = *m.Message
		if m.Message.QuickReply != nil {
			e.QuickReply = *m.Message.QuickReply
		}
	}
	return e
}

// EchoEvent converts the raw event into its typed form.
func (m Messaging) EchoEvent() EchoEvent {
	e := EchoEvent{Event: m.base()}
	if m.Message != nil {
		e.Message = *m.Message
		if m.Message.IsEcho != nil {
			e.IsEcho = *m.Message.IsEcho
		}
	}
	return e
}

// PostbackEvent converts the raw event into its typed form.
func (m Messaging) PostbackEvent() PostbackEvent {
	e := PostbackEvent{Event: m.base()}
	if m.Postback != nil {
		e.Postback = *m.Postback
	}
	return e
}

// TemplateEvent converts the raw event into its typed form.
func (m Messaging) TemplateEvent() TemplateEvent {
	e := TemplateEvent{Event: m.base()}
	if m.Template != nil {
		e.Template = *m.Template
	}
	return e
}

// ReferralEvent converts the raw event into its typed form.
func (m Messaging) ReferralEvent() ReferralEvent {
	e := ReferralEvent{Event: m.base()}
	if m.Referral != nil {
		e.Referral = *m.Referral
	}
	return e
}
