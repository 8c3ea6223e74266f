package routes

import (
	"net/http"
	"time"

	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	cart *controllers.CartController,
	checkout *controllers.CheckoutController,
	catalog *controllers.CatalogController,
	cfg config.Config,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public browse pages - proxied to the backend as-is
	public := r.Group("/api")
	{
		public.GET("/products", catalog.Proxy("GET", "/products"))
		public.GET("/products/:id", catalog.ByID("/products"))
		public.GET("/producers", catalog.Proxy("GET", "/producers"))
		public.GET("/producers/:id", catalog.ByID("/producers"))
		public.GET("/blog", catalog.Proxy("GET", "/blog"))
		public.GET("/blog/:id", catalog.ByID("/blog"))
	}

	// Session-scoped routes; guests get a cookie-pinned cart
	session := r.Group("/api")
	session.Use(middleware.SessionMiddleware(cfg.JWTSecret, cfg.Env == "production"))
	{
		session.GET("/cart", cart.GetCart)
		session.POST("/cart/add", cart.AddItem)
		session.PATCH("/cart/items/:product_id", cart.UpdateQuantity)
		session.DELETE("/cart/remove/:product_id", cart.RemoveItem)
		session.DELETE("/cart/clear", cart.ClearCart)
		session.POST("/cart/validate-stock", cart.ValidateStock)

		session.GET("/checkout", checkout.Enter)
		session.POST("/checkout/confirm", checkout.ConfirmCardReturn)

		// Placing an order needs a signed-in shopper
		authed := session.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.POST("/checkout/submit", checkout.Submit)
			authed.POST("/checkout/resend-verification", checkout.ResendVerification)
		}
	}
}
