package usecases

import (
	"context"
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/application/offer/dto"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/offer/valueobjects"
	apperrors "github.com/tigefa4u/Ghost-sub000/internal/shared/errors"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

type CreateOfferCommand struct {
	Name             string
	Code             string
	Type             string
	Amount           int64
	Duration         string
	DurationInMonths int
	RedemptionType   string
	Cadence          string
	Currency         string
	CouponID         string
}

type CreateOfferUseCase struct {
	offerRepo offer.Repository
	logger    logger.Interface
}

func NewCreateOfferUseCase(offerRepo offer.Repository, logger logger.Interface) *CreateOfferUseCase {
	return &CreateOfferUseCase{offerRepo: offerRepo, logger: logger}
}

func (uc *CreateOfferUseCase) Execute(ctx context.Context, cmd CreateOfferCommand) (*dto.OfferDTO, error) {
	if cmd.Code != "" {
		existing, err := uc.offerRepo.GetByCode(ctx, cmd.Code)
		if err != nil {
			uc.logger.Errorw("failed to check offer code", "error", err, "code", cmd.Code)
			return nil, fmt.Errorf("failed to check offer code: %w", err)
		}
		if existing != nil {
			return nil, apperrors.NewConflictError("offer code already exists", cmd.Code)
		}
	}

	redemptionType := vo.RedemptionType(cmd.RedemptionType)
	if cmd.RedemptionType == "" {
		redemptionType = vo.RedemptionSignup
	}

	off, err := offer.NewOffer(offer.NewOfferParams{
		Name:             cmd.Name,
		Code:             cmd.Code,
		Type:             vo.OfferType(cmd.Type),
		Amount:           cmd.Amount,
		Duration:         vo.Duration(cmd.Duration),
		DurationInMonths: cmd.DurationInMonths,
		RedemptionType:   redemptionType,
		Cadence:          vo.Cadence(cmd.Cadence),
		Currency:         cmd.Currency,
		CouponID:         cmd.CouponID,
	})
	if err != nil {
		return nil, apperrors.NewValidationError("invalid offer", err.Error())
	}

	if err := uc.offerRepo.Create(ctx, off); err != nil {
		uc.logger.Errorw("failed to create offer", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	uc.logger.Infow("created offer", "offer_sid", off.SID(), "type", off.Type().String(), "redemption_type", off.RedemptionType().String())
	return dto.ToOfferDTO(off), nil
}
