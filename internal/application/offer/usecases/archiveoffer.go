package usecases

import (
	"context"
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	apperrors "github.com/tigefa4u/Ghost-sub000/internal/shared/errors"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

type ArchiveOfferCommand struct {
	SID string
}

// ArchiveOfferUseCase deactivates an offer so it can no longer be attached.
// Existing subscriptions keep their recorded offer; archiving only blocks
// new redemptions.
type ArchiveOfferUseCase struct {
	offerRepo offer.Repository
	logger    logger.Interface
}

func NewArchiveOfferUseCase(offerRepo offer.Repository, logger logger.Interface) *ArchiveOfferUseCase {
	return &ArchiveOfferUseCase{offerRepo: offerRepo, logger: logger}
}

func (uc *ArchiveOfferUseCase) Execute(ctx context.Context, cmd ArchiveOfferCommand) error {
	off, err := uc.offerRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get offer", "error", err, "sid", cmd.SID)
		return fmt.Errorf("failed to get offer: %w", err)
	}
	if off == nil {
		return apperrors.NewNotFoundError("offer not found")
	}

	off.Archive()
	if err := uc.offerRepo.Update(ctx, off); err != nil {
		uc.logger.Errorw("failed to archive offer", "error", err, "sid", cmd.SID)
		return fmt.Errorf("failed to archive offer: %w", err)
	}

	uc.logger.Infow("archived offer", "offer_sid", cmd.SID)
	return nil
}
