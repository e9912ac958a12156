package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tigefa4u/Ghost-sub000/internal/interfaces/http/handlers"
)

// SubscriptionRouteConfig contains dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	OfferHandler        *handlers.OfferHandler
}

// SetupSubscriptionRoutes configures subscription read routes and the
// retention offer attachment route.
// :sid is a subscription SID (sub_xxx format).
func SetupSubscriptionRoutes(api *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.GET("/:sid", cfg.SubscriptionHandler.GetSubscription)
		subscriptions.POST("/:sid/offers", cfg.OfferHandler.ApplyRetentionOffer)
	}

	members := api.Group("/members")
	{
		members.GET("/:member_sid/subscriptions", cfg.SubscriptionHandler.GetMemberSubscriptions)
	}
}
