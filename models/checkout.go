package models

// CheckoutState is the explicit checkout progression. Modeling it as a
// tagged state keeps illegal combinations (a card order with a cleared cart
// and no redirect URL) unrepresentable in handler responses.
type CheckoutState string

const (
	CheckoutCollecting   CheckoutState = "collecting"
	CheckoutSubmitting   CheckoutState = "submitting"
	CheckoutOrderCreated CheckoutState = "order_created"
	CheckoutFailed       CheckoutState = "failed"
)

// IsTerminal reports whether the checkout reached an end state.
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutOrderCreated || s == CheckoutFailed
}

func (s CheckoutState) String() string {
	return string(s)
}
