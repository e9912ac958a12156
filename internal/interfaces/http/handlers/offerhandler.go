package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tigefa4u/Ghost-sub000/internal/application/offer/usecases"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/id"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/utils"
)

// OfferHandler manages offer CRUD and retention attachment.
type OfferHandler struct {
	createOfferUseCase         *usecases.CreateOfferUseCase
	getOfferUseCase            *usecases.GetOfferUseCase
	listOffersUseCase          *usecases.ListOffersUseCase
	archiveOfferUseCase        *usecases.ArchiveOfferUseCase
	applyRetentionOfferUseCase *usecases.ApplyRetentionOfferUseCase
	logger                     logger.Interface
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(
	createUC *usecases.CreateOfferUseCase,
	getUC *usecases.GetOfferUseCase,
	listUC *usecases.ListOffersUseCase,
	archiveUC *usecases.ArchiveOfferUseCase,
	retentionUC *usecases.ApplyRetentionOfferUseCase,
	logger logger.Interface,
) *OfferHandler {
	return &OfferHandler{
		createOfferUseCase:         createUC,
		getOfferUseCase:            getUC,
		listOffersUseCase:          listUC,
		archiveOfferUseCase:        archiveUC,
		applyRetentionOfferUseCase: retentionUC,
		logger:                     logger,
	}
}

// CreateOfferRequest represents the request to create an offer
type CreateOfferRequest struct {
	Name             string `json:"name" binding:"required"`
	Code             string `json:"code" binding:"required"`
	Type             string `json:"type" binding:"required,oneof=percent fixed trial free_months"`
	Amount           int64  `json:"amount"`
	Duration         string `json:"duration" binding:"omitempty,oneof=once forever repeating"`
	DurationInMonths int    `json:"duration_in_months"`
	RedemptionType   string `json:"redemption_type" binding:"omitempty,oneof=signup retention"`
	Cadence          string `json:"cadence" binding:"omitempty,oneof=month year"`
	Currency         string `json:"currency"`
	CouponID         string `json:"coupon_id"`
}

// ApplyRetentionOfferRequest attaches an offer to a subscription mid-life.
type ApplyRetentionOfferRequest struct {
	OfferID string `json:"offer_id" binding:"required"`
}

// CreateOffer handles offer creation.
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create offer request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createOfferUseCase.Execute(c.Request.Context(), usecases.CreateOfferCommand{
		Name:             req.Name,
		Code:             req.Code,
		Type:             req.Type,
		Amount:           req.Amount,
		Duration:         req.Duration,
		DurationInMonths: req.DurationInMonths,
		RedemptionType:   req.RedemptionType,
		Cadence:          req.Cadence,
		Currency:         req.Currency,
		CouponID:         req.CouponID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Offer created successfully")
}

// GetOffer returns an offer by its short ID.
func (h *OfferHandler) GetOffer(c *gin.Context) {
	sid := c.Param("sid")
	if err := id.ValidatePrefix(sid, id.PrefixOffer); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid offer id")
		return
	}

	result, err := h.getOfferUseCase.Execute(c.Request.Context(), usecases.GetOfferQuery{SID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ListOffers returns offers with optional filters and pagination.
func (h *OfferHandler) ListOffers(c *gin.Context) {
	query := usecases.ListOffersQuery{Page: 1, PageSize: 20}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid page parameter")
			return
		}
		query.Page = page
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 || pageSize > 100 {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid page_size parameter")
			return
		}
		query.PageSize = pageSize
	}
	if rt := c.Query("redemption_type"); rt != "" {
		query.RedemptionType = &rt
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid active parameter")
			return
		}
		query.Active = &active
	}

	result, err := h.listOffersUseCase.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Offers, result.Total, result.Page, result.PageSize)
}

// ArchiveOffer deactivates an offer. Existing subscriptions keep it.
func (h *OfferHandler) ArchiveOffer(c *gin.Context) {
	sid := c.Param("sid")
	if err := id.ValidatePrefix(sid, id.PrefixOffer); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid offer id")
		return
	}

	if err := h.archiveOfferUseCase.Execute(c.Request.Context(), usecases.ArchiveOfferCommand{SID: sid}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offer archived successfully", nil)
}

// ApplyRetentionOffer attaches a retention offer to a subscription.
func (h *OfferHandler) ApplyRetentionOffer(c *gin.Context) {
	subscriptionSID := c.Param("sid")
	if err := id.ValidatePrefix(subscriptionSID, id.PrefixSubscription); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid subscription id")
		return
	}

	var req ApplyRetentionOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid retention offer request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := id.ValidatePrefix(req.OfferID, id.PrefixOffer); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid offer id")
		return
	}

	err := h.applyRetentionOfferUseCase.Execute(c.Request.Context(), usecases.ApplyRetentionOfferCommand{
		SubscriptionSID: subscriptionSID,
		OfferSID:        req.OfferID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Retention offer applied successfully", nil)
}
