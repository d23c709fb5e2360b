// Package messages provides fluent builders for outgoing Messenger
// payloads: buttons, quick replies and the button, generic, media and
// receipt templates. Builders validate platform limits at construction
// time and serialize to the Send API wire format via json.Marshal.
package messages

import "encoding/json"

// ValidationError reports an input that violates a Messenger platform
// limit. It is returned before any network call is attempted.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Button is implemented by every outgoing button type.
type Button interface {
	json.Marshaler
}

// Buttons attached to a single template or element are capped by the
// platform.
const maxTemplateButtons = 3

// templateAttachment is the envelope every template serializes into.
type templateAttachment struct {
	Attachment struct {
		Type    string `json:"type"`
		Payload any    `json:"payload"`
	} `json:"attachment"`
}

func wrapTemplate(payload any) templateAttachment {
	var t templateAttachment
	t.Attachment.Type = "template"
	t.Attachment.Payload = payload
	return t
}
