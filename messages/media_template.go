package messages

import "encoding/json"

// MediaType is the kind of media a media template carries.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaElement is the single media item of a media template. It
// references its media either by attachment ID or by URL, never both.
type MediaElement struct {
	mediaType    MediaType
	attachmentID string
	url          string
	buttons      []Button
}

// NewMediaElement creates a media element of the given type.
func NewMediaElement(mediaType MediaType) (*MediaElement, error) {
	if mediaType != MediaTypeImage && mediaType != MediaTypeVideo {
		return nil, ValidationError("media type must be image or video")
	}
	return &MediaElement{mediaType: mediaType}, nil
}

// SetAttachmentID references previously uploaded media by its ID.
func (e *MediaElement) SetAttachmentID(attachmentID string) error {
	if e.url != "" {
		return ValidationError("cannot set both attachment_id and url")
	}
	e.attachmentID = attachmentID
	return nil
}

// SetURL references media by a Facebook URL.
func (e *MediaElement) SetURL(mediaURL string) error {
	if e.attachmentID != "" {
		return ValidationError("cannot set both attachment_id and url")
	}
	e.url = mediaURL
	return nil
}

// AddButtons appends buttons to the element, up to 3 in total.
func (e *MediaElement) AddButtons(buttons ...Button) error {
	if len(e.buttons)+len(buttons) > maxTemplateButtons {
		return ValidationError("element can have a maximum of 3 buttons")
	}
	e.buttons = append(e.buttons, buttons...)
	return nil
}

func (e *MediaElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MediaType    MediaType `json:"media_type"`
		AttachmentID string    `json:"attachment_id,omitempty"`
		URL          string    `json:"url,omitempty"`
		Buttons      []Button  `json:"buttons,omitempty"`
	}{
		MediaType:    e.mediaType,
		AttachmentID: e.attachmentID,
		URL:          e.url,
		Buttons:      e.buttons,
	})
}

// MediaTemplate sends a single image or video, optionally with buttons.
type MediaTemplate struct {
	element  *MediaElement
	sharable bool
}

// NewMediaTemplate creates an empty media template.
func NewMediaTemplate() *MediaTemplate {
	return &MediaTemplate{}
}

// SetSharable controls the native share button on the template.
func (t *MediaTemplate) SetSharable(sharable bool) *MediaTemplate {
	t.sharable = sharable
	return t
}

// SetElement sets the media element. The platform accepts exactly one
// element per media template.
func (t *MediaTemplate) SetElement(element *MediaElement) *MediaTemplate {
	t.element = element
	return t
}

func (t *MediaTemplate) MarshalJSON() ([]byte, error) {
	elements := []*MediaElement{}
	if t.element != nil {
		elements = append(elements, t.element)
	}
	return json.Marshal(wrapTemplate(struct {
		TemplateType string          `json:"template_type"`
		Elements     []*MediaElement `json:"elements"`
		Sharable     bool            `json:"sharable"`
	}{
		TemplateType: "media",
		Elements:     elements,
		Sharable:     t.sharable,
	}))
}
