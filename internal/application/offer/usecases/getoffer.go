package usecases

import (
	"context"
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/application/offer/dto"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	apperrors "github.com/tigefa4u/Ghost-sub000/internal/shared/errors"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

type GetOfferQuery struct {
	SID string
}

type GetOfferUseCase struct {
	offerRepo offer.Repository
	logger    logger.Interface
}

func NewGetOfferUseCase(offerRepo offer.Repository, logger logger.Interface) *GetOfferUseCase {
	return &GetOfferUseCase{offerRepo: offerRepo, logger: logger}
}

func (uc *GetOfferUseCase) Execute(ctx context.Context, query GetOfferQuery) (*dto.OfferDTO, error) {
	off, err := uc.offerRepo.GetBySID(ctx, query.SID)
	if err != nil {
		uc.logger.Errorw("failed to get offer", "error", err, "sid", query.SID)
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if off == nil {
		return nil, apperrors.NewNotFoundError("offer not found")
	}
	return dto.ToOfferDTO(off), nil
}
