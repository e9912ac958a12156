package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tigefa4u/Ghost-sub000/internal/interfaces/http/middleware"
	"github.com/tigefa4u/Ghost-sub000/internal/interfaces/http/routes"
)

// SetupRoutes installs middleware and all route groups on the engine.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := c.engine.Group("/api/v1")

	routes.SetupBillingRoutes(api, &routes.BillingRouteConfig{
		WebhookHandler: c.webhookHandler,
	})

	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: c.subscriptionHandler,
		OfferHandler:        c.offerHandler,
	})

	routes.SetupOfferRoutes(api, &routes.OfferRouteConfig{
		OfferHandler: c.offerHandler,
	})
}

// Run starts the HTTP server on the given address.
func (c *Container) Run(addr string) error {
	return c.engine.Run(addr)
}
