package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tigefa4u/Ghost-sub000/internal/interfaces/http/handlers"
)

// OfferRouteConfig contains dependencies for offer routes.
type OfferRouteConfig struct {
	OfferHandler *handlers.OfferHandler
}

// SetupOfferRoutes configures offer management routes.
// :sid is an offer SID (off_xxx format).
func SetupOfferRoutes(api *gin.RouterGroup, cfg *OfferRouteConfig) {
	offers := api.Group("/offers")
	{
		offers.POST("", cfg.OfferHandler.CreateOffer)
		offers.GET("", cfg.OfferHandler.ListOffers)
		offers.GET("/:sid", cfg.OfferHandler.GetOffer)
		offers.DELETE("/:sid", cfg.OfferHandler.ArchiveOffer)
	}
}
