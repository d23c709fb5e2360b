package webhooks

import "encoding/json"

// Envelope is the top-level webhook payload delivered by Facebook.
// Only payloads with Object == "page" are processed.
type Envelope struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one batch unit in the envelope. Facebook may batch several
// messaging events per entry.
type Entry struct {
	ID        string      `json:"id,omitempty"`
	Time      int64       `json:"time,omitempty"`
	Messaging []Messaging `json:"messaging"`
}

// Messaging is a single messaging event. Exactly one of the optional
// fields below determines the event kind; see Classify.
type Messaging struct {
	Sender    User  `json:"sender"`
	Recipient User  `json:"recipient"`
	Timestamp int64 `json:"timestamp"`

	Message  *Message  `json:"message,omitempty"`
	Postback *Postback `json:"postback,omitempty"`
	Template *Template `json:"template,omitempty"`
	Referral *Referral `json:"referral,omitempty"`
}

// User identifies a sender or recipient.
type User struct {
	ID string `json:"id"`
}

// Message carries the content of a message event. IsEcho is a pointer so
// that a present-but-false value still marks the event as an echo.
type Message struct {
	MID         string       `json:"mid,omitempty"`
	Text        string       `json:"text,omitempty"`
	QuickReply  *QuickReply  `json:"quick_reply,omitempty"`
	IsEcho      *bool        `json:"is_echo,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// QuickReply carries the payload of a tapped quick reply.
type QuickReply struct {
	Payload string `json:"payload"`
}

// Postback carries the data of a tapped postback button.
type Postback struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Template describes a template delivery event. Buttons are kept raw since
// their shape depends on the template type.
type Template struct {
	TemplateType string          `json:"template_type"`
	Text         string          `json:"text,omitempty"`
	Buttons      json.RawMessage `json:"buttons,omitempty"`
}

// Referral describes how a user reached the bot (m.me link, ad, etc).
type Referral struct {
	Source string `json:"source"`
	Type   string `json:"type"`
	Ref    string `json:"ref,omitempty"`
}

// Attachment represents a message attachment.
type Attachment struct {
	Type    string            `json:"type"`
	Payload AttachmentPayload `json:"payload"`
}

// AttachmentPayload represents an attachment payload.
type AttachmentPayload struct {
	URL string `json:"url,omitempty"`
}
