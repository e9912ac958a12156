package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyRequestID = "request_id"

	// Database table names
	TableSubscriptions    = "subscriptions"
	TableOffers           = "offers"
	TableOfferRedemptions = "offer_redemptions"

	// Redis key prefixes
	WebhookDedupKeyPrefix = "ghostsub:webhook:event:"

	// Redis pub/sub channels
	ChannelOfferEvents        = "ghostsub:events:offer"
	ChannelSubscriptionEvents = "ghostsub:events:subscription"
)
