package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tigefa4u/Ghost-sub000/internal/application/subscription/usecases"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/id"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/utils"
)

// SubscriptionHandler serves read access to synced subscriptions.
type SubscriptionHandler struct {
	getSubscriptionUseCase        *usecases.GetSubscriptionUseCase
	getMemberSubscriptionsUseCase *usecases.GetMemberSubscriptionsUseCase
	logger                        logger.Interface
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(
	getSubUC *usecases.GetSubscriptionUseCase,
	getMemberSubsUC *usecases.GetMemberSubscriptionsUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getSubscriptionUseCase:        getSubUC,
		getMemberSubscriptionsUseCase: getMemberSubsUC,
		logger:                        logger,
	}
}

// GetSubscription returns a single subscription by its short ID.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sid := c.Param("sid")
	if err := id.ValidatePrefix(sid, id.PrefixSubscription); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid subscription id")
		return
	}

	dto, err := h.getSubscriptionUseCase.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{SID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dto)
}

// GetMemberSubscriptions returns every subscription for a member, each with
// its projected next payment.
func (h *SubscriptionHandler) GetMemberSubscriptions(c *gin.Context) {
	memberSID := c.Param("member_sid")
	if memberSID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "member id is required")
		return
	}

	dtos, err := h.getMemberSubscriptionsUseCase.Execute(c.Request.Context(), usecases.GetMemberSubscriptionsQuery{
		MemberSID: memberSID,
	})
	if err != nil {
		h.logger.Errorw("failed to list member subscriptions", "error", err, "member_sid", memberSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, dtos)
}
