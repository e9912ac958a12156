package mappers

import (
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/offer/valueobjects"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/persistence/models"
)

type OfferMapper interface {
	ToEntity(model *models.OfferModel) (*offer.Offer, error)
	ToModel(entity *offer.Offer) (*models.OfferModel, error)
	ToEntities(models []*models.OfferModel) ([]*offer.Offer, error)
}

type OfferMapperImpl struct{}

func NewOfferMapper() OfferMapper {
	return &OfferMapperImpl{}
}

func (m *OfferMapperImpl) ToEntity(model *models.OfferModel) (*offer.Offer, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := offer.ReconstructOffer(offer.ReconstructParams{
		ID:               model.ID,
		SID:              model.SID,
		Name:             model.Name,
		Code:             model.Code,
		Type:             vo.OfferType(model.Type),
		Amount:           model.Amount,
		Duration:         vo.Duration(model.Duration),
		DurationInMonths: model.DurationInMonths,
		RedemptionType:   vo.RedemptionType(model.RedemptionType),
		Cadence:          vo.Cadence(model.Cadence),
		Currency:         model.Currency,
		CouponID:         model.CouponID,
		Active:           model.Active,
		RedemptionCount:  model.RedemptionCount,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct offer: %w", err)
	}

	return entity, nil
}

func (m *OfferMapperImpl) ToModel(entity *offer.Offer) (*models.OfferModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OfferModel{
		ID:               entity.ID(),
		SID:              entity.SID(),
		Name:             entity.Name(),
		Code:             entity.Code(),
		Type:             entity.Type().String(),
		Amount:           entity.Amount(),
		Duration:         entity.Duration().String(),
		DurationInMonths: entity.DurationInMonths(),
		RedemptionType:   entity.RedemptionType().String(),
		Cadence:          entity.Cadence().String(),
		Currency:         entity.Currency(),
		CouponID:         entity.CouponID(),
		Active:           entity.Active(),
		RedemptionCount:  entity.RedemptionCount(),
		Version:          entity.Version(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}, nil
}

func (m *OfferMapperImpl) ToEntities(offerModels []*models.OfferModel) ([]*offer.Offer, error) {
	entities := make([]*offer.Offer, 0, len(offerModels))
	for _, model := range offerModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
