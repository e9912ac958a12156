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

type OfferRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OfferMapper
	logger logger.Interface
}

func NewOfferRepository(
	gormDB *gorm.DB,
	logger logger.Interface,
) offer.Repository {
	return &OfferRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewOfferMapper(),
		logger: logger,
	}
}

func (r *OfferRepositoryImpl) Create(ctx context.Context, offerEntity *offer.Offer) error {
	model, err := r.mapper.ToModel(offerEntity)
	if err != nil {
		r.logger.Errorw("failed to map offer entity to model", "error", err)
		return fmt.Errorf("failed to map offer entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create offer in database", "error", err)
		return fmt.Errorf("failed to create offer: %w", err)
	}

	if err := offerEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set offer ID", "error", err)
		return fmt.Errorf("failed to set offer ID: %w", err)
	}

	r.logger.Infow("offer created successfully", "id", model.ID, "sid", model.SID, "type", model.Type)
	return nil
}

func (r *OfferRepositoryImpl) GetByID(ctx context.Context, id uint) (*offer.Offer, error) {
	var model models.OfferModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get offer by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *OfferRepositoryImpl) GetBySID(ctx context.Context, sid string) (*offer.Offer, error) {
	var model models.OfferModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get offer by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *OfferRepositoryImpl) GetByCouponID(ctx context.Context, couponID string) (*offer.Offer, error) {
	var model models.OfferModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("coupon_id = ?", couponID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get offer by coupon ID", "coupon_id", couponID, "error", err)
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *OfferRepositoryImpl) GetByCode(ctx context.Context, code string) (*offer.Offer, error) {
	var model models.OfferModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("code = ?", code).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get offer by code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *OfferRepositoryImpl) Update(ctx context.Context, offerEntity *offer.Offer) error {
	model, err := r.mapper.ToModel(offerEntity)
	if err != nil {
		r.logger.Errorw("failed to map offer entity to model", "error", err)
		return fmt.Errorf("failed to map offer entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.OfferModel{}).
		Where("id = ?", model.ID).
		Select("name", "code", "active", "redemption_count", "version", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update offer", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update offer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("offer %d not found for update", model.ID)
	}

	return nil
}

func (r *OfferRepositoryImpl) List(ctx context.Context, filter offer.Filter) ([]*offer.Offer, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.OfferModel{})

	if filter.RedemptionType != nil {
		query = query.Where("redemption_type = ?", *filter.RedemptionType)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count offers", "error", err)
		return nil, 0, fmt.Errorf("failed to count offers: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var offerModels []*models.OfferModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&offerModels).Error; err != nil {
		r.logger.Errorw("failed to list offers", "error", err)
		return nil, 0, fmt.Errorf("failed to list offers: %w", err)
	}

	entities, err := r.mapper.ToEntities(offerModels)
	if err != nil {
		r.logger.Errorw("failed to map offer models to entities", "error", err)
		return nil, 0, fmt.Errorf("failed to map offers: %w", err)
	}

	return entities, total, nil
}
