package messages

import "encoding/json"

// ContentType selects what a quick reply asks the user for.
type ContentType string

const (
	ContentTypeText            ContentType = "text"
	ContentTypeUserPhoneNumber ContentType = "user_phone_number"
	ContentTypeUserEmail       ContentType = "user_email"
)

// QuickReply is a single tappable reply chip.
type QuickReply struct {
	contentType ContentType
	title       string
	payload     string
	imageURL    string
}

// NewQuickReply creates a text quick reply with the given title.
func NewQuickReply(title string) *QuickReply {
	return &QuickReply{contentType: ContentTypeText, title: title}
}

// SetContentType switches the quick reply to a phone-number or email
// request. Title and image are ignored by the platform for those types.
func (q *QuickReply) SetContentType(contentType ContentType) *QuickReply {
	q.contentType = contentType
	return q
}

// SetPayload sets the payload delivered back when the reply is tapped.
func (q *QuickReply) SetPayload(payload string) *QuickReply {
	q.payload = payload
	return q
}

// SetImageURL sets the icon shown next to the title.
func (q *QuickReply) SetImageURL(imageURL string) *QuickReply {
	q.imageURL = imageURL
	return q
}

func (q *QuickReply) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ContentType ContentType `json:"content_type"`
		Title       string      `json:"title,omitempty"`
		Payload     string      `json:"payload,omitempty"`
		ImageURL    string      `json:"image_url,omitempty"`
	}{
		ContentType: q.contentType,
		Title:       q.title,
		Payload:     q.payload,
		ImageURL:    q.imageURL,
	})
}

// QuickReplies is an outgoing message carrying a set of quick replies.
type QuickReplies struct {
	text         string
	attachment   any
	quickReplies []*QuickReply
}

// NewQuickReplies creates a quick-replies message with the given text.
func NewQuickReplies(text string) *QuickReplies {
	return &QuickReplies{text: text, quickReplies: []*QuickReply{}}
}

// SetAttachment attaches a payload (for example a template) to the
// message instead of plain text.
func (q *QuickReplies) SetAttachment(attachment any) *QuickReplies {
	q.attachment = attachment
	return q
}

// AddQuickReplies appends replies to the message.
func (q *QuickReplies) AddQuickReplies(replies ...*QuickReply) *QuickReplies {
	q.quickReplies = append(q.quickReplies, replies...)
	return q
}

func (q *QuickReplies) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text         string        `json:"text"`
		Attachment   any           `json:"attachment,omitempty"`
		QuickReplies []*QuickReply `json:"quick_replies"`
	}{
		Text:         q.text,
		Attachment:   q.attachment,
		QuickReplies: q.quickReplies,
	})
}
