package messages

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxReceiptElements = 100

// Address is the shipping address block of a receipt.
type Address struct {
	Street1    string `json:"street_1"`
	Street2    string `json:"street_2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

// Summary is the payment summary block of a receipt. TotalCost is the
// only field the platform requires.
type Summary struct {
	Subtotal     *float64 `json:"subtotal,omitempty"`
	ShippingCost *float64 `json:"shipping_cost,omitempty"`
	TotalTax     *float64 `json:"total_tax,omitempty"`
	TotalCost    float64  `json:"total_cost"`
}

// Adjustment is a discount applied to a receipt.
type Adjustment struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ReceiptElement is one purchased item on a receipt.
type ReceiptElement struct {
	title    string
	subtitle string
	quantity *int
	price    float64
	currency string
	imageURL string
}

// NewReceiptElement creates a receipt line item.
func NewReceiptElement(title string, price float64) *ReceiptElement {
	return &ReceiptElement{title: title, price: price}
}

// SetSubtitle sets the item subtitle.
func (e *ReceiptElement) SetSubtitle(subtitle string) *ReceiptElement {
	e.subtitle = subtitle
	return e
}

// SetQuantity sets the purchased quantity.
func (e *ReceiptElement) SetQuantity(quantity int) *ReceiptElement {
	e.quantity = &quantity
	return e
}

// SetCurrency sets the item currency.
func (e *ReceiptElement) SetCurrency(currency string) *ReceiptElement {
	e.currency = currency
	return e
}

// SetImageURL sets the item image.
func (e *ReceiptElement) SetImageURL(imageURL string) *ReceiptElement {
	e.imageURL = imageURL
	return e
}

func (e *ReceiptElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title    string  `json:"title"`
		Subtitle string  `json:"subtitle,omitempty"`
		Quantity *int    `json:"quantity,omitempty"`
		Price    float64 `json:"price"`
		Currency string  `json:"currency,omitempty"`
		ImageURL string  `json:"image_url,omitempty"`
	}{
		Title:    e.title,
		Subtitle: e.subtitle,
		Quantity: e.quantity,
		Price:    e.price,
		Currency: e.currency,
		ImageURL: e.imageURL,
	})
}

// ReceiptTemplate is an order confirmation message.
type ReceiptTemplate struct {
	recipientName string
	merchantName  string
	orderNumber   string
	orderURL      string
	currency      string
	paymentMethod string
	timestamp     int64
	elements      []*ReceiptElement
	address       *Address
	summary       Summary
	adjustments   []Adjustment
	sharable      bool
}

// NewReceiptTemplate creates a receipt. Recipient name, order number,
// currency and payment method are all required by the platform. The
// summary starts out as {total_cost: 0} until SetSummary is called.
func NewReceiptTemplate(recipientName, orderNumber, currency, paymentMethod string) (*ReceiptTemplate, error) {
	err := validation.Errors{
		"recipient_name": validation.Validate(recipientName, validation.Required),
		"order_number":   validation.Validate(orderNumber, validation.Required),
		"currency":       validation.Validate(currency, validation.Required),
		"payment_method": validation.Validate(paymentMethod, validation.Required),
	}.Filter()
	if err != nil {
		return nil, ValidationError(err.Error())
	}
	return &ReceiptTemplate{
		recipientName: recipientName,
		orderNumber:   orderNumber,
		currency:      currency,
		paymentMethod: paymentMethod,
		elements:      []*ReceiptElement{},
	}, nil
}

// SetMerchantName sets the merchant shown instead of the page name.
func (t *ReceiptTemplate) SetMerchantName(merchantName string) *ReceiptTemplate {
	t.merchantName = merchantName
	return t
}

// SetOrderURL sets the URL of the order.
func (t *ReceiptTemplate) SetOrderURL(orderURL string) *ReceiptTemplate {
	t.orderURL = orderURL
	return t
}

// SetTimestamp sets the order timestamp in epoch seconds.
func (t *ReceiptTemplate) SetTimestamp(timestamp int64) *ReceiptTemplate {
	t.timestamp = timestamp
	return t
}

// SetAddress sets the shipping address.
func (t *ReceiptTemplate) SetAddress(address Address) *ReceiptTemplate {
	t.address = &address
	return t
}

// SetSummary replaces the payment summary.
func (t *ReceiptTemplate) SetSummary(summary Summary) *ReceiptTemplate {
	t.summary = summary
	return t
}

// SetSharable controls the native share button on the template.
func (t *ReceiptTemplate) SetSharable(sharable bool) *ReceiptTemplate {
	t.sharable = sharable
	return t
}

// AddAdjustments appends discounts to the receipt.
func (t *ReceiptTemplate) AddAdjustments(adjustments ...Adjustment) *ReceiptTemplate {
	t.adjustments = append(t.adjustments, adjustments...)
	return t
}

// AddElements appends line items to the receipt, up to 100 in total.
func (t *ReceiptTemplate) AddElements(elements ...*ReceiptElement) error {
	if len(t.elements)+len(elements) > maxReceiptElements {
		return ValidationError("receipt template supports a maximum of 100 elements")
	}
	t.elements = append(t.elements, elements...)
	return nil
}

func (t *ReceiptTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(wrapTemplate(struct {
		TemplateType  string            `json:"template_type"`
		RecipientName string            `json:"recipient_name"`
		MerchantName  string            `json:"merchant_name,omitempty"`
		OrderNumber   string            `json:"order_number"`
		OrderURL      string            `json:"order_url,omitempty"`
		Currency      string            `json:"currency"`
		PaymentMethod string            `json:"payment_method"`
		Timestamp     int64             `json:"timestamp,omitempty"`
		Address       *Address          `json:"address,omitempty"`
		Summary       Summary           `json:"summary"`
		Adjustments   []Adjustment      `json:"adjustments,omitempty"`
		Elements      []*ReceiptElement `json:"elements"`
		Sharable      bool              `json:"sharable"`
	}{
		TemplateType:  "receipt",
		RecipientName: t.recipientName,
		MerchantName:  t.merchantName,
		OrderNumber:   t.orderNumber,
		OrderURL:      t.orderURL,
		Currency:      t.currency,
		PaymentMethod: t.paymentMethod,
		Timestamp:     t.timestamp,
		Address:       t.address,
		Summary:       t.summary,
		Adjustments:   t.adjustments,
		Elements:      t.elements,
		Sharable:      t.sharable,
	}))
}
