package messages

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxButtonTemplateTextLength = 640

// ButtonTemplate is a text message with up to 3 buttons.
type ButtonTemplate struct {
	text    string
	buttons []Button
}

// NewButtonTemplate creates a button template. The text is capped at 640
// characters by the platform.
func NewButtonTemplate(text string) (*ButtonTemplate, error) {
	err := validation.Validate(text,
		validation.Required.Error("button template text is required"),
		validation.RuneLength(0, maxButtonTemplateTextLength).Error("button template text must be 640 characters or less"),
	)
	if err != nil {
		return nil, ValidationError(err.Error())
	}
	return &ButtonTemplate{text: text, buttons: []Button{}}, nil
}

// AddButtons appends buttons to the template, up to 3 in total.
func (t *ButtonTemplate) AddButtons(buttons ...Button) error {
	if len(t.buttons)+len(buttons) > maxTemplateButtons {
		return ValidationError("button template can have a maximum of 3 buttons")
	}
	t.buttons = append(t.buttons, buttons...)
	return nil
}

func (t *ButtonTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(wrapTemplate(struct {
		TemplateType string   `json:"template_type"`
		Text         string   `json:"text"`
		Buttons      []Button `json:"buttons"`
	}{
		TemplateType: "button",
		Text:         t.text,
		Buttons:      t.buttons,
	}))
}
