package controllers

import (
	"net/http"

	"storefront-service/clients"
	"storefront-service/logger"

	"github.com/gin-gonic/gin"
)

// CatalogController proxies the browse pages (products, producers, blog)
// straight to the backend; the storefront adds no logic to them.
type CatalogController struct {
	API *clients.APIClient
}

func NewCatalogController(api *clients.APIClient) *CatalogController {
	return &CatalogController{API: api}
}

// Proxy forwards the request to the given backend path.
func (cc *CatalogController) Proxy(method, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := clients.ReadJSONBody(c.Request)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		resp, err := cc.API.Do(c.Request.Context(), method, path, c.Request.URL.Query(), c.Request.Header, clients.BodyFromBytes(bodyBytes))
		if err != nil {
			logger.Error(c, "catalog upstream request failed", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
			return
		}

		if err := clients.CopyResponse(c.Writer, resp); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read upstream response"})
			return
		}
	}
}

// ByID forwards a single-resource lookup, e.g. /products/:id.
func (cc *CatalogController) ByID(basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := basePath + "/" + c.Param("id")

		resp, err := cc.API.Do(c.Request.Context(), http.MethodGet, path, c.Request.URL.Query(), c.Request.Header, nil)
		if err != nil {
			logger.Error(c, "catalog upstream request failed", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
			return
		}

		if err := clients.CopyResponse(c.Writer, resp); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read upstream response"})
			return
		}
	}
}
