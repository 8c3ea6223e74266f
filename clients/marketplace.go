package clients

import (
	"context"
	"net/http"

	"storefront-service/models"
)

// Typed calls for the slice of the backend contract the checkout flow uses.

type checkStockRequest struct {
	Items []models.StockCheckItem `json:"items"`
}

type checkStockResponse struct {
	Data struct {
		StockIssues []models.StockIssue `json:"stockIssues"`
	} `json:"data"`
}

// CheckStock asks the backend to re-verify availability for the given lines
// in one batch. An empty issue list means everything is still available.
func (a *APIClient) CheckStock(ctx context.Context, items []models.StockCheckItem) ([]models.StockIssue, error) {
	var resp checkStockResponse
	if err := a.postJSON(ctx, "/products/check-stock", "", checkStockRequest{Items: items}, &resp); err != nil {
		return nil, err
	}
	issues := resp.Data.StockIssues
	if issues == nil {
		issues = []models.StockIssue{}
	}
	return issues, nil
}

// CreateOrderRequest follows the backend order contract.
type CreateOrderRequest struct {
	Items           []OrderItem            `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	ShippingCost    float64                `json:"shippingCost"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
}

type OrderItem struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

type createOrderResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Order       models.Order        `json:"order"`
		BankDetails *models.BankDetails `json:"bankDetails"`
	} `json:"data"`
}

// CreateOrder places the order. The returned bank details are non-nil for
// bank-transfer orders only.
func (a *APIClient) CreateOrder(ctx context.Context, authToken string, req CreateOrderRequest) (*models.Order, *models.BankDetails, error) {
	var resp createOrderResponse
	if err := a.postJSON(ctx, "/orders", authToken, req, &resp); err != nil {
		return nil, nil, err
	}
	order := resp.Data.Order
	return &order, resp.Data.BankDetails, nil
}

type stripeSessionRequest struct {
	OrderID string `json:"orderId"`
}

type stripeSessionResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// CreateStripeSession obtains the external payment page URL for a card
// order. An empty URL in a 2xx response is treated as a failure by callers.
func (a *APIClient) CreateStripeSession(ctx context.Context, authToken, orderID string) (string, error) {
	var resp stripeSessionResponse
	if err := a.postJSON(ctx, "/stripe/create-checkout-session", authToken, stripeSessionRequest{OrderID: orderID}, &resp); err != nil {
		return "", err
	}
	return resp.Data.URL, nil
}

// SendVerificationEmail asks the backend to resend the account
// verification mail.
func (a *APIClient) SendVerificationEmail(ctx context.Context, authToken string) error {
	return a.postJSON(ctx, "/email/send-verification", authToken, nil, nil)
}

type profileResponse struct {
	Data models.Profile `json:"data"`
}

// GetProfile fetches the shopper's profile, used to prefill the shipping
// address on checkout entry.
func (a *APIClient) GetProfile(ctx context.Context, authToken string) (*models.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/users/profile", nil)
	if err != nil {
		return nil, err
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := readAll(resp)
		return nil, decodeAPIError(resp.StatusCode, raw)
	}

	var out profileResponse
	if err := decodeInto(resp, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
