package controllers

import (
	"net/http"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// cartView is the cart payload the frontend renders: lines plus the derived
// aggregates and any outstanding stock issues.
func (cc *CartController) cartView(cart *models.Cart, sessionID string) gin.H {
	return gin.H{
		"cart":          cart,
		"count":         cart.Count(),
		"total":         cart.Total(),
		"vendor_groups": cart.GroupedByVendor(),
		"stock_issues":  cc.Carts.Issues(sessionID),
	}
}

// GetCart returns the current cart for the session
func (cc *CartController) GetCart(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	cart := cc.Carts.GetCart(c, sessionID)
	c.JSON(http.StatusOK, cc.cartView(cart, sessionID))
}

type addItemRequest struct {
	Product  models.Product `json:"product" binding:"required"`
	Quantity int            `json:"quantity"`
}

// AddItem merges a product into the cart
func (cc *CartController) AddItem(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Product.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	res, cart := cc.Carts.AddItem(c, sessionID, req.Product, req.Quantity)
	if !res.Success {
		c.JSON(http.StatusConflict, gin.H{"result": res})
		return
	}

	view := cc.cartView(cart, sessionID)
	view["result"] = res
	c.JSON(http.StatusOK, view)
}

type updateQuantityRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantity sets a line's quantity; zero removes the line
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	productID := c.Param("product_id")
	res, cart := cc.Carts.UpdateQuantity(c, sessionID, productID, req.VariantID, req.Quantity)
	if !res.Success {
		c.JSON(http.StatusConflict, gin.H{"result": res})
		return
	}

	view := cc.cartView(cart, sessionID)
	view["result"] = res
	c.JSON(http.StatusOK, view)
}

// RemoveItem deletes a line from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	productID := c.Param("product_id")
	variantID := c.Query("variant_id")

	cart := cc.Carts.RemoveItem(c, sessionID, productID, variantID)
	c.JSON(http.StatusOK, cc.cartView(cart, sessionID))
}

// ClearCart removes all items from the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	cc.Carts.Clear(c, sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// ValidateStock re-checks the cart's availability against the backend
func (cc *CartController) ValidateStock(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	validation := cc.Carts.ValidateStock(c, sessionID)
	c.JSON(http.StatusOK, validation)
}
