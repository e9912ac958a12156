package usecases

import (
	"context"
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/application/offer/dto"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

type ListOffersQuery struct {
	RedemptionType *string
	Active         *bool
	Page           int
	PageSize       int
}

type ListOffersResult struct {
	Offers   []*dto.OfferDTO
	Total    int64
	Page     int
	PageSize int
}

type ListOffersUseCase struct {
	offerRepo offer.Repository
	logger    logger.Interface
}

func NewListOffersUseCase(offerRepo offer.Repository, logger logger.Interface) *ListOffersUseCase {
	return &ListOffersUseCase{offerRepo: offerRepo, logger: logger}
}

func (uc *ListOffersUseCase) Execute(ctx context.Context, query ListOffersQuery) (*ListOffersResult, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 20
	}

	offers, total, err := uc.offerRepo.List(ctx, offer.Filter{
		RedemptionType: query.RedemptionType,
		Active:         query.Active,
		Page:           query.Page,
		PageSize:       query.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list offers", "error", err)
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	return &ListOffersResult{
		Offers:   dto.ToOfferDTOList(offers),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
