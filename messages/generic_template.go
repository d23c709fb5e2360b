package messages

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	maxElementTitleLength = 80
	maxGenericElements    = 10
)

// DefaultAction is the URL opened when a generic element itself is
// tapped, outside of its buttons.
type DefaultAction struct {
	Type               string `json:"type"`
	URL                string `json:"url"`
	WebviewHeightRatio string `json:"webview_height_ratio,omitempty"`
}

// GenericElement is one card in a generic template carousel.
type GenericElement struct {
	title         string
	subtitle      string
	imageURL      string
	defaultAction *DefaultAction
	buttons       []Button
}

// NewGenericElement creates a carousel card. The title is capped at 80
// characters by the platform.
func NewGenericElement(title string) (*GenericElement, error) {
	err := validation.Validate(title,
		validation.Required.Error("element title is required"),
		validation.RuneLength(0, maxElementTitleLength).Error("element title must be 80 characters or less"),
	)
	if err != nil {
		return nil, ValidationError(err.Error())
	}
	return &GenericElement{title: title}, nil
}

// SetSubtitle sets the card subtitle, capped at 80 characters.
func (e *GenericElement) SetSubtitle(subtitle string) error {
	err := validation.Validate(subtitle,
		validation.RuneLength(0, maxElementTitleLength).Error("element subtitle must be 80 characters or less"),
	)
	if err != nil {
		return ValidationError(err.Error())
	}
	e.subtitle = subtitle
	return nil
}

// SetImageURL sets the card image.
func (e *GenericElement) SetImageURL(imageURL string) *GenericElement {
	e.imageURL = imageURL
	return e
}

// SetDefaultAction sets the action taken when the card body is tapped.
func (e *GenericElement) SetDefaultAction(action DefaultAction) *GenericElement {
	e.defaultAction = &action
	return e
}

// AddButtons appends buttons to the card, up to 3 in total.
func (e *GenericElement) AddButtons(buttons ...Button) error {
	if len(e.buttons)+len(buttons) > maxTemplateButtons {
		return ValidationError("element can have a maximum of 3 buttons")
	}
	e.buttons = append(e.buttons, buttons...)
	return nil
}

func (e *GenericElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title         string         `json:"title"`
		Subtitle      string         `json:"subtitle,omitempty"`
		ImageURL      string         `json:"image_url,omitempty"`
		DefaultAction *DefaultAction `json:"default_action,omitempty"`
		Buttons       []Button       `json:"buttons,omitempty"`
	}{
		Title:         e.title,
		Subtitle:      e.subtitle,
		ImageURL:      e.imageURL,
		DefaultAction: e.defaultAction,
		Buttons:       e.buttons,
	})
}

// GenericTemplate is a horizontally scrollable carousel of up to 10
// elements.
type GenericTemplate struct {
	elements []*GenericElement
	sharable bool
}

// NewGenericTemplate creates an empty generic template.
func NewGenericTemplate() *GenericTemplate {
	return &GenericTemplate{elements: []*GenericElement{}}
}

// SetSharable controls the native share button on the template.
func (t *GenericTemplate) SetSharable(sharable bool) *GenericTemplate {
	t.sharable = sharable
	return t
}

// AddElements appends cards to the carousel, up to 10 in total.
func (t *GenericTemplate) AddElements(elements ...*GenericElement) error {
	if len(t.elements)+len(elements) > maxGenericElements {
		return ValidationError("generic template supports a maximum of 10 elements")
	}
	t.elements = append(t.elements, elements...)
	return nil
}

func (t *GenericTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(wrapTemplate(struct {
		TemplateType string            `json:"template_type"`
		Elements     []*GenericElement `json:"elements"`
		Sharable     bool              `json:"sharable"`
	}{
		TemplateType: "generic",
		Elements:     t.elements,
		Sharable:     t.sharable,
	}))
}
