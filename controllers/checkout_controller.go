package controllers

import (
	"net/http"

	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// Enter opens the checkout page: address prefill plus the initial stock
// reconciliation whose issues gate the submit control
func (cc *CheckoutController) Enter(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	res := cc.Checkout.Enter(c, sessionID, middleware.AuthTokenOrEmpty(c))
	c.JSON(http.StatusOK, res)
}

// Submit places the order
func (cc *CheckoutController) Submit(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	authToken, err := middleware.GetAuthToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	res := cc.Checkout.Submit(c, sessionID, authToken, req)
	switch {
	case res.State == models.CheckoutOrderCreated:
		c.JSON(http.StatusOK, res)
	case res.State.IsTerminal():
		c.JSON(http.StatusBadGateway, res)
	default:
		// Refused or aborted; the shopper stays on the form.
		c.JSON(http.StatusUnprocessableEntity, res)
	}
}

// ConfirmCardReturn is the landing call after the shopper returns from the
// external payment page; it clears the cart for card orders
func (cc *CheckoutController) ConfirmCardReturn(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	cc.Checkout.ConfirmCardReturn(c, sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "order confirmed"})
}

// ResendVerification asks the backend to resend the verification email
func (cc *CheckoutController) ResendVerification(c *gin.Context) {
	authToken, err := middleware.GetAuthToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := cc.Checkout.ResendVerification(c, authToken); err != nil {
		logger.Error(c, "resend verification failed", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to resend verification email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification email sent"})
}
