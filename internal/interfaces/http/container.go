package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	offerUsecases "github.com/tigefa4u/Ghost-sub000/internal/application/offer/usecases"
	subUsecases "github.com/tigefa4u/Ghost-sub000/internal/application/subscription/usecases"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	sharedEvents "github.com/tigefa4u/Ghost-sub000/internal/domain/shared/events"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/cache"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/config"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/pubsub"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/repository"
	"github.com/tigefa4u/Ghost-sub000/internal/interfaces/http/handlers"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/db"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

// Container wires repositories, use cases and handlers together and owns the
// in-process event dispatcher plus the Redis bridges that fan events out to
// other instances.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	subscriptionRepo subscription.Repository
	offerRepo        offer.Repository
	redemptionRepo   offer.RedemptionRepository

	// Event plumbing
	dispatcher           *sharedEvents.InMemoryEventDispatcher
	offerEventBus        *pubsub.RedisOfferEventBus
	subscriptionEventBus *pubsub.RedisSubscriptionEventBus

	// Handlers
	webhookHandler      *handlers.WebhookHandler
	subscriptionHandler *handlers.SubscriptionHandler
	offerHandler        *handlers.OfferHandler
}

// NewContainer builds the full dependency graph for the HTTP surface.
func NewContainer(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gormDB,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.subscriptionRepo = repository.NewSubscriptionRepository(gormDB, log)
	c.offerRepo = repository.NewOfferRepository(gormDB, log)
	c.redemptionRepo = repository.NewRedemptionRepository(gormDB, log)

	c.dispatcher = sharedEvents.NewInMemoryEventDispatcher(cfg.Billing.EventBufferSize, log)
	c.offerEventBus = pubsub.NewRedisOfferEventBus(redisClient, log)
	c.subscriptionEventBus = pubsub.NewRedisSubscriptionEventBus(redisClient, log)
	if err := c.registerEventBridges(); err != nil {
		return nil, err
	}
	if err := c.dispatcher.Start(); err != nil {
		return nil, err
	}

	txManager := db.NewTransactionManager(gormDB)
	deduplicator := cache.NewWebhookDeduplicator(redisClient, cfg.Billing.WebhookDedupTTLMinutes)
	couponResolver := offerUsecases.NewEnsureOfferForCouponUseCase(c.offerRepo, log)

	syncUC := subUsecases.NewSyncSubscriptionUseCase(
		c.subscriptionRepo,
		c.offerRepo,
		c.redemptionRepo,
		couponResolver,
		deduplicator,
		txManager,
		c.dispatcher,
		log,
	)
	getSubUC := subUsecases.NewGetSubscriptionUseCase(c.subscriptionRepo, c.offerRepo, log)
	getMemberSubsUC := subUsecases.NewGetMemberSubscriptionsUseCase(c.subscriptionRepo, c.offerRepo, log)

	createOfferUC := offerUsecases.NewCreateOfferUseCase(c.offerRepo, log)
	getOfferUC := offerUsecases.NewGetOfferUseCase(c.offerRepo, log)
	listOffersUC := offerUsecases.NewListOffersUseCase(c.offerRepo, log)
	archiveOfferUC := offerUsecases.NewArchiveOfferUseCase(c.offerRepo, log)
	retentionUC := offerUsecases.NewApplyRetentionOfferUseCase(
		c.subscriptionRepo,
		c.offerRepo,
		c.redemptionRepo,
		txManager,
		c.dispatcher,
		log,
	)

	c.webhookHandler = handlers.NewWebhookHandler(syncUC, log)
	c.subscriptionHandler = handlers.NewSubscriptionHandler(getSubUC, getMemberSubsUC, log)
	c.offerHandler = handlers.NewOfferHandler(
		createOfferUC, getOfferUC, listOffersUC, archiveOfferUC, retentionUC, log,
	)

	return c, nil
}

// registerEventBridges forwards in-process domain events onto the Redis
// channels so sibling instances observe them.
func (c *Container) registerEventBridges() error {
	err := c.dispatcher.Subscribe(offer.OfferRedeemedEventType, func(event sharedEvents.DomainEvent) error {
		redeemed, ok := event.(*offer.OfferRedeemedEvent)
		if !ok {
			return nil
		}
		return c.offerEventBus.PublishRedemption(
			context.Background(),
			redeemed.OfferSID,
			redeemed.MemberSID,
			redeemed.SubscriptionSID,
			redeemed.OccurredAt,
		)
	})
	if err != nil {
		return err
	}

	err = c.dispatcher.Subscribe("subscription.linked", func(event sharedEvents.DomainEvent) error {
		linked, ok := event.(*subscription.SubscriptionLinkedEvent)
		if !ok {
			return nil
		}
		return c.subscriptionEventBus.Publish(context.Background(), pubsub.SubscriptionEventMessage{
			EventType:       event.GetEventType(),
			SubscriptionSID: linked.SubscriptionSID,
			MemberSID:       linked.MemberSID,
			NewStatus:       linked.Status,
			OccurredAt:      linked.Timestamp.Unix(),
		})
	})
	if err != nil {
		return err
	}

	return c.dispatcher.Subscribe("subscription.status_changed", func(event sharedEvents.DomainEvent) error {
		changed, ok := event.(*subscription.SubscriptionStatusChangedEvent)
		if !ok {
			return nil
		}
		return c.subscriptionEventBus.Publish(context.Background(), pubsub.SubscriptionEventMessage{
			EventType:       event.GetEventType(),
			SubscriptionSID: changed.SubscriptionSID,
			MemberSID:       changed.MemberSID,
			OldStatus:       changed.OldStatus,
			NewStatus:       changed.NewStatus,
			OccurredAt:      changed.Timestamp.Unix(),
		})
	})
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown stops the event dispatcher, draining buffered events first.
func (c *Container) Shutdown() error {
	return c.dispatcher.Stop()
}
