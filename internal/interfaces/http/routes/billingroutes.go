// Package routes provides HTTP route configurations.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tigefa4u/Ghost-sub000/internal/interfaces/http/handlers"
)

// BillingRouteConfig contains dependencies for billing webhook routes.
type BillingRouteConfig struct {
	WebhookHandler *handlers.WebhookHandler
}

// SetupBillingRoutes configures the billing provider webhook endpoint.
func SetupBillingRoutes(api *gin.RouterGroup, cfg *BillingRouteConfig) {
	billing := api.Group("/billing")
	{
		billing.POST("/webhooks/subscription", cfg.WebhookHandler.HandleSubscriptionEvent)
	}
}
