package services_test

import (
	"context"
	"errors"
	"testing"

	"storefront-service/clients"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/stretchr/testify/assert"
)

type fakeAPI struct {
	createOrderCalls int
	lastOrderReq     clients.CreateOrderRequest
	orderErr         error
	bankDetails      *models.BankDetails

	stripeCalls int
	stripeURL   string
	stripeErr   error

	resendCalls int
	profile     *models.Profile
}

func (f *fakeAPI) CreateOrder(_ context.Context, _ string, req clients.CreateOrderRequest) (*models.Order, *models.BankDetails, error) {
	f.createOrderCalls++
	f.lastOrderReq = req
	if f.orderErr != nil {
		return nil, nil, f.orderErr
	}
	return &models.Order{ID: "order-1", Status: "pending", PaymentMethod: req.PaymentMethod}, f.bankDetails, nil
}

func (f *fakeAPI) CreateStripeSession(_ context.Context, _, orderID string) (string, error) {
	f.stripeCalls++
	if f.stripeErr != nil {
		return "", f.stripeErr
	}
	return f.stripeURL, nil
}

func (f *fakeAPI) SendVerificationEmail(_ context.Context, _ string) error {
	f.resendCalls++
	return nil
}

func (f *fakeAPI) GetProfile(_ context.Context, _ string) (*models.Profile, error) {
	if f.profile == nil {
		return nil, errors.New("no profile")
	}
	return f.profile, nil
}

func newCheckoutFixture(checker *fakeChecker, api *fakeAPI) (*services.CartService, *services.CheckoutService) {
	carts := services.NewCartService(newFakeRepo(), checker)
	return carts, services.NewCheckoutService(carts, api)
}

func submitReq(method models.PaymentMethod) services.SubmitRequest {
	return services.SubmitRequest{
		Address: models.ShippingAddress{
			FullName:   "Jean Dupont",
			Street:     "1 rue des Halles",
			City:       "Lyon",
			PostalCode: "69001",
			Country:    "FR",
		},
		ShippingCost:  4.90,
		PaymentMethod: method,
	}
}

func TestSubmitRefusesEmptyCart(t *testing.T) {
	api := &fakeAPI{}
	_, checkout := newCheckoutFixture(&fakeChecker{}, api)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentBankTransfer))

	assert.Equal(t, models.CheckoutCollecting, res.State)
	assert.Equal(t, 0, api.createOrderCalls, "no order call for an empty cart")
}

func TestSubmitRefusesWithOutstandingIssues(t *testing.T) {
	api := &fakeAPI{}
	checker := &fakeChecker{issues: []models.StockIssue{
		{ProductID: "p1", ProductName: "Product p1", Message: "sold out"},
	}}
	carts, checkout := newCheckoutFixture(checker, api)

	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)
	carts.ValidateStock(context.Background(), "s1")

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentBankTransfer))

	assert.Equal(t, models.CheckoutCollecting, res.State)
	assert.NotNil(t, res.Validation)
	assert.False(t, res.Validation.Valid)
	assert.Equal(t, 0, api.createOrderCalls, "no order call while issues are outstanding")
}

func TestSubmitRechecksStockBeforeOrdering(t *testing.T) {
	api := &fakeAPI{}
	checker := &fakeChecker{}
	carts, checkout := newCheckoutFixture(checker, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	// Stock ran out between page entry and the submit click.
	checker.issues = []models.StockIssue{
		{ProductID: "p1", ProductName: "Product p1", Message: "sold out"},
	}

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentBankTransfer))

	assert.Equal(t, models.CheckoutCollecting, res.State)
	assert.Equal(t, 1, checker.calls, "final reconciliation must run at submit time")
	assert.Equal(t, 0, api.createOrderCalls)
}

func TestSubmitBankTransferClearsCartImmediately(t *testing.T) {
	api := &fakeAPI{bankDetails: &models.BankDetails{IBAN: "FR76 3000 0000 0000", Reference: "ORD-1"}}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentBankTransfer))

	assert.Equal(t, models.CheckoutOrderCreated, res.State)
	assert.NotNil(t, res.Order)
	assert.NotNil(t, res.BankDetails)
	assert.Empty(t, res.RedirectURL)
	assert.True(t, carts.GetCart(context.Background(), "s1").IsEmpty())
}

func TestSubmitCardKeepsCartUntilConfirmation(t *testing.T) {
	api := &fakeAPI{stripeURL: "https://pay.example.com/session/abc"}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentCard))

	assert.Equal(t, models.CheckoutOrderCreated, res.State)
	assert.Equal(t, "https://pay.example.com/session/abc", res.RedirectURL)
	assert.False(t, carts.GetCart(context.Background(), "s1").IsEmpty(),
		"card orders keep the cart until the confirmation landing")

	checkout.ConfirmCardReturn(context.Background(), "s1")
	assert.True(t, carts.GetCart(context.Background(), "s1").IsEmpty())
}

func TestSubmitCardStripeFailureKeepsCart(t *testing.T) {
	api := &fakeAPI{stripeErr: errors.New("stripe unavailable")}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentCard))

	assert.Equal(t, models.CheckoutCollecting, res.State)
	assert.NotEmpty(t, res.Message)
	assert.False(t, carts.GetCart(context.Background(), "s1").IsEmpty())
}

func TestSubmitCardEmptyRedirectURLIsFailure(t *testing.T) {
	api := &fakeAPI{stripeURL: ""}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentCard))

	assert.Equal(t, models.CheckoutCollecting, res.State)
	assert.False(t, carts.GetCart(context.Background(), "s1").IsEmpty())
}

func TestSubmitUnverifiedEmailIsDistinguished(t *testing.T) {
	api := &fakeAPI{orderErr: &clients.APIError{
		StatusCode: 403,
		Code:       clients.CodeEmailNotVerified,
		Message:    "email not verified",
	}}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentCashOnDelivery))

	assert.Equal(t, models.CheckoutFailed, res.State)
	assert.True(t, res.EmailNotVerified)

	assert.NoError(t, checkout.ResendVerification(context.Background(), "tok"))
	assert.Equal(t, 1, api.resendCalls)
}

func TestSubmitGenericOrderFailure(t *testing.T) {
	api := &fakeAPI{orderErr: errors.New("boom")}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentBankTransfer))

	assert.Equal(t, models.CheckoutFailed, res.State)
	assert.False(t, res.EmailNotVerified)
	assert.False(t, carts.GetCart(context.Background(), "s1").IsEmpty(),
		"a failed order must not lose the cart")
}

func TestSubmitSendsCartLinesAndShipping(t *testing.T) {
	api := &fakeAPI{}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", models.Product{
		ID: "p1", VariantID: "v1", Name: models.LocalizedText{"en": "Eggs"}, Price: 3.20, Stock: 12,
	}, 2)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentCashOnDelivery))

	assert.Equal(t, models.CheckoutOrderCreated, res.State)
	if assert.Len(t, api.lastOrderReq.Items, 1) {
		assert.Equal(t, "p1", api.lastOrderReq.Items[0].ProductID)
		assert.Equal(t, "v1", api.lastOrderReq.Items[0].VariantID)
		assert.Equal(t, 2, api.lastOrderReq.Items[0].Quantity)
	}
	assert.Equal(t, 4.90, api.lastOrderReq.ShippingCost)
	assert.Equal(t, models.PaymentCashOnDelivery, api.lastOrderReq.PaymentMethod)
}

func TestSubmitRejectsUnknownPaymentMethod(t *testing.T) {
	api := &fakeAPI{}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Submit(context.Background(), "s1", "tok", submitReq(models.PaymentMethod("paypal")))

	assert.Equal(t, models.CheckoutCollecting, res.State)
	assert.Equal(t, 0, api.createOrderCalls)
}

func TestEnterRunsInitialValidationAndPrefillsAddress(t *testing.T) {
	api := &fakeAPI{profile: &models.Profile{
		Email:   "jean@example.com",
		Address: models.ShippingAddress{City: "Lyon", Country: "FR"},
	}}
	checker := &fakeChecker{issues: []models.StockIssue{
		{ProductID: "p1", ProductName: "Product p1", Message: "only 1 left"},
	}}
	carts, checkout := newCheckoutFixture(checker, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Enter(context.Background(), "s1", "tok")

	assert.Equal(t, models.CheckoutCollecting, res.State)
	assert.Equal(t, "Lyon", res.Address.City)
	assert.False(t, res.Validation.Valid)
	assert.Len(t, res.Validation.Issues, 1)
}

func TestEnterProfileFailureLeavesBlankAddress(t *testing.T) {
	api := &fakeAPI{}
	carts, checkout := newCheckoutFixture(&fakeChecker{}, api)
	carts.AddItem(context.Background(), "s1", product("p1", 2.00, 10), 2)

	res := checkout.Enter(context.Background(), "s1", "tok")

	assert.Equal(t, models.CheckoutCollecting, res.State)
	assert.Equal(t, models.ShippingAddress{}, res.Address)
	assert.True(t, res.Validation.Valid)
}
