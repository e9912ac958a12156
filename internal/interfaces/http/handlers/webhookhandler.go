package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tigefa4u/Ghost-sub000/internal/application/subscription/usecases"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/utils"
)

// WebhookHandler receives provider subscription events and feeds them into
// the sync pipeline.
type WebhookHandler struct {
	syncUseCase *usecases.SyncSubscriptionUseCase
	logger      logger.Interface
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(syncUC *usecases.SyncSubscriptionUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		syncUseCase: syncUC,
		logger:      logger,
	}
}

// CouponPayload is the provider coupon embedded in a subscription event.
type CouponPayload struct {
	ID               string `json:"id" binding:"required"`
	Name             string `json:"name"`
	PercentOff       *int64 `json:"percent_off"`
	AmountOff        *int64 `json:"amount_off"`
	Currency         string `json:"currency"`
	Duration         string `json:"duration"`
	DurationInMonths int    `json:"duration_in_months"`
}

// SubscriptionEventRequest is the provider subscription snapshot carried by a
// webhook delivery. Timestamps are RFC 3339.
type SubscriptionEventRequest struct {
	EventID           string         `json:"event_id"`
	MemberID          string         `json:"member_id" binding:"required"`
	SubscriptionID    string         `json:"subscription_id" binding:"required"` // provider-native ID
	Status            string         `json:"status" binding:"required"`
	PriceAmount       int64          `json:"price_amount"`
	PriceInterval     string         `json:"price_interval" binding:"required,oneof=month year week day"`
	PriceCurrency     string         `json:"price_currency" binding:"required"`
	PriceNickname     string         `json:"price_nickname"`
	StartDate         time.Time      `json:"start_date" binding:"required"`
	CurrentPeriodEnd  *time.Time     `json:"current_period_end"`
	CancelAtPeriodEnd bool           `json:"cancel_at_period_end"`
	DiscountStart     *time.Time     `json:"discount_start"`
	DiscountEnd       *time.Time     `json:"discount_end"`
	TrialStartAt      *time.Time     `json:"trial_start_at"`
	TrialEndAt        *time.Time     `json:"trial_end_at"`
	Coupon            *CouponPayload `json:"coupon"`
	OfferID           *string        `json:"offer_id"` // explicit offer from checkout metadata
}

// HandleSubscriptionEvent processes a provider subscription webhook.
func (h *WebhookHandler) HandleSubscriptionEvent(c *gin.Context) {
	var req SubscriptionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid subscription event payload", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SyncSubscriptionCommand{
		EventID:           req.EventID,
		MemberSID:         req.MemberID,
		ProviderID:        req.SubscriptionID,
		Status:            req.Status,
		PriceAmount:       req.PriceAmount,
		PriceInterval:     req.PriceInterval,
		PriceCurrency:     req.PriceCurrency,
		PriceNickname:     req.PriceNickname,
		StartDate:         req.StartDate,
		CurrentPeriodEnd:  req.CurrentPeriodEnd,
		CancelAtPeriodEnd: req.CancelAtPeriodEnd,
		DiscountStart:     req.DiscountStart,
		DiscountEnd:       req.DiscountEnd,
		TrialStartAt:      req.TrialStartAt,
		TrialEndAt:        req.TrialEndAt,
		ExplicitOfferSID:  req.OfferID,
	}
	if req.Coupon != nil {
		cmd.Coupon = &offer.CouponData{
			CouponID:         req.Coupon.ID,
			Name:             req.Coupon.Name,
			PercentOff:       req.Coupon.PercentOff,
			AmountOff:        req.Coupon.AmountOff,
			Currency:         req.Coupon.Currency,
			Duration:         req.Coupon.Duration,
			DurationInMonths: req.Coupon.DurationInMonths,
		}
	}

	result, err := h.syncUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to sync subscription event",
			"error", err,
			"event_id", req.EventID,
			"subscription_id", req.SubscriptionID,
		)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
