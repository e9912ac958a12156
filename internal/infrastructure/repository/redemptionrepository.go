package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/persistence/mappers"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/persistence/models"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/db"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

type RedemptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RedemptionMapper
	logger logger.Interface
}

func NewRedemptionRepository(
	gormDB *gorm.DB,
	logger logger.Interface,
) offer.RedemptionRepository {
	return &RedemptionRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewRedemptionMapper(),
		logger: logger,
	}
}

func (r *RedemptionRepositoryImpl) Create(ctx context.Context, redemptionEntity *offer.Redemption) error {
	model, err := r.mapper.ToModel(redemptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map redemption entity to model", "error", err)
		return fmt.Errorf("failed to map redemption entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create redemption in database", "error", err)
		return fmt.Errorf("failed to create redemption: %w", err)
	}

	if err := redemptionEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set redemption ID", "error", err)
		return fmt.Errorf("failed to set redemption ID: %w", err)
	}

	return nil
}

func (r *RedemptionRepositoryImpl) GetBySubscriptionSID(ctx context.Context, subscriptionSID string) ([]*offer.Redemption, error) {
	var redemptionModels []*models.OfferRedemptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("subscription_sid = ?", subscriptionSID).Order("redeemed_at DESC").Find(&redemptionModels).Error; err != nil {
		r.logger.Errorw("failed to get redemptions by subscription SID", "subscription_sid", subscriptionSID, "error", err)
		return nil, fmt.Errorf("failed to get redemptions: %w", err)
	}

	return r.mapper.ToEntities(redemptionModels)
}

func (r *RedemptionRepositoryImpl) CountByOfferSID(ctx context.Context, offerSID string) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.OfferRedemptionModel{}).Where("offer_sid = ?", offerSID).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count redemptions", "offer_sid", offerSID, "error", err)
		return 0, fmt.Errorf("failed to count redemptions: %w", err)
	}

	return count, nil
}
