package services

import (
	"context"

	"storefront-service/clients"
	"storefront-service/logger"
	"storefront-service/models"

	"go.uber.org/zap"
)

// MarketplaceAPI is the slice of the backend contract checkout depends on.
type MarketplaceAPI interface {
	CreateOrder(ctx context.Context, authToken string, req clients.CreateOrderRequest) (*models.Order, *models.BankDetails, error)
	CreateStripeSession(ctx context.Context, authToken, orderID string) (string, error)
	SendVerificationEmail(ctx context.Context, authToken string) error
	GetProfile(ctx context.Context, authToken string) (*models.Profile, error)
}

// CheckoutService sequences the steps that turn a validated cart into a
// placed order: address prefill, the final stock re-check, order creation,
// and the branch between the card redirect handoff and the locally
// completed payment methods.
type CheckoutService struct {
	carts *CartService
	api   MarketplaceAPI
}

func NewCheckoutService(carts *CartService, api MarketplaceAPI) *CheckoutService {
	return &CheckoutService{carts: carts, api: api}
}

// EnterResult is the state of the checkout page on entry.
type EnterResult struct {
	State      models.CheckoutState   `json:"state"`
	Cart       *models.Cart           `json:"cart"`
	Address    models.ShippingAddress `json:"address"`
	Validation models.StockValidation `json:"validation"`
}

// Enter opens the checkout: prefills the address from the profile when the
// shopper is signed in, and runs the initial stock reconciliation whose
// issues gate the submit control.
func (s *CheckoutService) Enter(ctx context.Context, sessionID, authToken string) *EnterResult {
	res := &EnterResult{
		State: models.CheckoutCollecting,
		Cart:  s.carts.GetCart(ctx, sessionID),
	}

	if authToken != "" {
		profile, err := s.api.GetProfile(ctx, authToken)
		if err != nil {
			// Prefill is best-effort; the shopper types the address instead.
			logger.Warn(ctx, "profile prefill failed", zap.Error(err))
		} else {
			res.Address = profile.Address
		}
	}

	res.Validation = s.carts.ValidateStock(ctx, sessionID)
	return res
}

// SubmitRequest is the shopper's explicit order submission.
type SubmitRequest struct {
	Address       models.ShippingAddress `json:"address"`
	ShippingCost  float64                `json:"shipping_cost"`
	PaymentMethod models.PaymentMethod   `json:"payment_method"`
}

// SubmitResult is the outcome of a submission attempt. State collecting
// means the submission was refused or aborted and the shopper stays on the
// form; order_created carries either the redirect URL (card) or the
// confirmation data (bank transfer, cash on delivery).
type SubmitResult struct {
	State            models.CheckoutState    `json:"state"`
	Message          string                  `json:"message,omitempty"`
	Validation       *models.StockValidation `json:"validation,omitempty"`
	Order            *models.Order           `json:"order,omitempty"`
	BankDetails      *models.BankDetails     `json:"bank_details,omitempty"`
	RedirectURL      string                  `json:"redirect_url,omitempty"`
	EmailNotVerified bool                    `json:"email_not_verified,omitempty"`
}

func refused(msg string, validation *models.StockValidation) *SubmitResult {
	return &SubmitResult{State: models.CheckoutCollecting, Message: msg, Validation: validation}
}

// Submit places the order. The cart must be non-empty with no outstanding
// stock issues, and reconciliation is re-run as a final guard before the
// order call: time passes between page entry and the submit click, so the
// entry-time check alone is not enough.
func (s *CheckoutService) Submit(ctx context.Context, sessionID, authToken string, req SubmitRequest) *SubmitResult {
	if !req.PaymentMethod.Valid() {
		return refused("unknown payment method", nil)
	}

	cart := s.carts.GetCart(ctx, sessionID)
	if cart.IsEmpty() {
		return refused("cart is empty", nil)
	}
	if issues := s.carts.Issues(sessionID); len(issues) > 0 {
		return refused("resolve stock issues before ordering", &models.StockValidation{Valid: false, Issues: issues})
	}

	// Final guard. Fails open on transport errors, per ValidateStock.
	validation := s.carts.ValidateStock(ctx, sessionID)
	if !validation.Valid {
		return refused("some items are no longer available", &validation)
	}

	logger.Info(ctx, "checkout state transition",
		zap.String("session_id", sessionID),
		zap.String("state", models.CheckoutSubmitting.String()))

	orderReq := clients.CreateOrderRequest{
		ShippingAddress: req.Address,
		ShippingCost:    req.ShippingCost,
		PaymentMethod:   req.PaymentMethod,
	}
	for _, line := range cart.Lines {
		orderReq.Items = append(orderReq.Items, clients.OrderItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
		})
	}

	order, bankDetails, err := s.api.CreateOrder(ctx, authToken, orderReq)
	if err != nil {
		if clients.IsEmailNotVerified(err) {
			return &SubmitResult{
				State:            models.CheckoutFailed,
				Message:          "please verify your email address before ordering",
				EmailNotVerified: true,
			}
		}
		logger.Error(ctx, "order creation failed", err, zap.String("session_id", sessionID))
		return &SubmitResult{State: models.CheckoutFailed, Message: "failed to create order"}
	}

	if req.PaymentMethod == models.PaymentCard {
		// The cart stays populated until the shopper lands back on the
		// confirmation view; abandoning the payment page must not lose it.
		url, err := s.api.CreateStripeSession(ctx, authToken, order.ID)
		if err != nil || url == "" {
			// The order may already exist upstream in a pending state; the
			// storefront does not try to reconcile that here.
			logger.Error(ctx, "stripe session creation failed", err,
				zap.String("order_id", order.ID))
			return refused("failed to start card payment, please try again", nil)
		}
		return &SubmitResult{
			State:       models.CheckoutOrderCreated,
			Order:       order,
			RedirectURL: url,
		}
	}

	s.carts.Clear(ctx, sessionID)
	return &SubmitResult{
		State:       models.CheckoutOrderCreated,
		Order:       order,
		BankDetails: bankDetails,
	}
}

// ConfirmCardReturn is called when the shopper lands back from the payment
// page; only now is the cart cleared for card orders.
func (s *CheckoutService) ConfirmCardReturn(ctx context.Context, sessionID string) {
	s.carts.Clear(ctx, sessionID)
}

// ResendVerification asks the backend to resend the verification mail,
// offered alongside the unverified-email checkout failure.
func (s *CheckoutService) ResendVerification(ctx context.Context, authToken string) error {
	return s.api.SendVerificationEmail(ctx, authToken)
}
