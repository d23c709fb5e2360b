package webhooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		m    Messaging
		want EventType
	}{
		{
			name: "plain text message",
			m:    Messaging{Message: &Message{Text: "hi"}},
			want: EventMessage,
		},
		{
			name: "quick reply wins over message",
			m: Messaging{Message: &Message{
				Text:       "hi",
				QuickReply: &QuickReply{Payload: "PAYLOAD"},
			}},
			want: EventQuickReply,
		},
		{
			name: "echo with is_echo true",
			m:    Messaging{Message: &Message{Text: "hi", IsEcho: boolPtr(true)}},
			want: EventEcho,
		},
		{
			name: "echo with is_echo false still classifies as echo",
			m:    Messaging{Message: &Message{Text: "hi", IsEcho: boolPtr(false)}},
			want: EventEcho,
		},
		{
			name: "quick reply wins over echo",
			m: Messaging{Message: &Message{
				QuickReply: &QuickReply{Payload: "PAYLOAD"},
				IsEcho:     boolPtr(true),
			}},
			want: EventQuickReply,
		},
		{
			name: "postback",
			m:    Messaging{Postback: &Postback{Title: "Start", Payload: "GET_STARTED"}},
			want: EventPostback,
		},
		{
			name: "message wins over postback",
			m: Messaging{
				Message:  &Message{Text: "hi"},
				Postback: &Postback{Payload: "GET_STARTED"},
			},
			want: EventMessage,
		},
		{
			name: "template",
			m:    Messaging{Template: &Template{TemplateType: "button"}},
			want: EventTemplate,
		},
		{
			name: "postback wins over template",
			m: Messaging{
				Postback: &Postback{Payload: "GET_STARTED"},
				Template: &Template{TemplateType: "button"},
			},
			want: EventPostback,
		},
		{
			name: "referral",
			m:    Messaging{Referral: &Referral{Source: "SHORTLINK", Type: "OPEN_THREAD"}},
			want: EventReferral,
		},
		{
			name: "empty event is unknown",
			m:    Messaging{Sender: User{ID: "123"}},
			want: EventUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.m))
		})
	}
}
