package messages

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxButtonTitleLength = 20

// Webview height ratios for URL buttons.
const (
	WebviewCompact = "compact"
	WebviewTall    = "tall"
	WebviewFull    = "full"
)

// Webview share button visibility values.
const (
	WebviewShareHide = "hide"
	WebviewShareShow = "show"
)

func validateButtonTitle(title string) error {
	err := validation.Validate(title,
		validation.Required.Error("button title is required"),
		validation.RuneLength(0, maxButtonTitleLength).Error("button title must be 20 characters or less"),
	)
	if err != nil {
		return ValidationError(err.Error())
	}
	return nil
}

// URLButton opens a web page when tapped.
type URLButton struct {
	title               string
	url                 string
	webviewHeightRatio  string
	messengerExtensions *bool
	fallbackURL         string
	webviewShareButton  string
}

// NewURLButton creates a URL button. The title is capped at 20 characters
// by the platform.
func NewURLButton(title, buttonURL string) (*URLButton, error) {
	if err := validateButtonTitle(title); err != nil {
		return nil, err
	}
	return &URLButton{title: title, url: buttonURL}, nil
}

// SetWebviewHeightRatio sets the webview height: compact, tall or full.
func (b *URLButton) SetWebviewHeightRatio(ratio string) *URLButton {
	b.webviewHeightRatio = ratio
	return b
}

// SetMessengerExtensions enables or disables Messenger extensions.
func (b *URLButton) SetMessengerExtensions(enabled bool) *URLButton {
	b.messengerExtensions = &enabled
	return b
}

// SetFallbackURL sets the URL to open when Messenger extensions are not
// supported.
func (b *URLButton) SetFallbackURL(fallbackURL string) *URLButton {
	b.fallbackURL = fallbackURL
	return b
}

// SetWebviewShareButton hides or shows the webview share button.
func (b *URLButton) SetWebviewShareButton(visibility string) *URLButton {
	b.webviewShareButton = visibility
	return b
}

func (b *URLButton) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type                string `json:"type"`
		Title               string `json:"title"`
		URL                 string `json:"url"`
		WebviewHeightRatio  string `json:"webview_height_ratio,omitempty"`
		MessengerExtensions *bool  `json:"messenger_extensions,omitempty"`
		FallbackURL         string `json:"fallback_url,omitempty"`
		WebviewShareButton  string `json:"webview_share_button,omitempty"`
	}{
		Type:                "web_url",
		Title:               b.title,
		URL:                 b.url,
		WebviewHeightRatio:  b.webviewHeightRatio,
		MessengerExtensions: b.messengerExtensions,
		FallbackURL:         b.fallbackURL,
		WebviewShareButton:  b.webviewShareButton,
	})
}

// PostbackButton sends its payload back to the webhook when tapped.
type PostbackButton struct {
	title   string
	payload string
}

// NewPostbackButton creates a postback button.
func NewPostbackButton(title, payload string) (*PostbackButton, error) {
	if err := validateButtonTitle(title); err != nil {
		return nil, err
	}
	return &PostbackButton{title: title, payload: payload}, nil
}

func (b *PostbackButton) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Payload string `json:"payload"`
	}{
		Type:    "postback",
		Title:   b.title,
		Payload: b.payload,
	})
}

// CallButton dials a phone number when tapped. The platform carries the
// number in the payload field.
type CallButton struct {
	title       string
	phoneNumber string
}

// NewCallButton creates a call button. The phone number must include the
// country code prefix.
func NewCallButton(title, phoneNumber string) (*CallButton, error) {
	if err := validateButtonTitle(title); err != nil {
		return nil, err
	}
	return &CallButton{title: title, phoneNumber: phoneNumber}, nil
}

func (b *CallButton) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Payload string `json:"payload"`
	}{
		Type:    "phone_number",
		Title:   b.title,
		Payload: b.phoneNumber,
	})
}
