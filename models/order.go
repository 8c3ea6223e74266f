package models

import "time"

// PaymentMethod selects the checkout path: card goes through the Stripe
// redirect handoff, bank transfer and cash on delivery complete locally.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentBankTransfer, PaymentCashOnDelivery:
		return true
	}
	return false
}

// ShippingAddress follows the backend order contract.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Order is the read-through copy of a created order. The backend owns the
// record; we keep only what the confirmation and payment steps need.
type Order struct {
	ID            string        `json:"id"`
	Reference     string        `json:"reference,omitempty"`
	Status        string        `json:"status,omitempty"`
	Total         float64       `json:"total,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time     `json:"createdAt,omitempty"`
}

// BankDetails are shown on the bank-transfer confirmation view.
type BankDetails struct {
	AccountHolder string `json:"accountHolder,omitempty"`
	IBAN          string `json:"iban"`
	BIC           string `json:"bic,omitempty"`
	Reference     string `json:"reference,omitempty"`
}

// Profile is the slice of the shopper's account used to prefill the
// shipping address form.
type Profile struct {
	Email   string          `json:"email"`
	Name    string          `json:"name,omitempty"`
	Address ShippingAddress `json:"address"`
}
