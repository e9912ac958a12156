package mappers

import (
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/persistence/models"
)

type RedemptionMapper interface {
	ToEntity(model *models.OfferRedemptionModel) (*offer.Redemption, error)
	ToModel(entity *offer.Redemption) (*models.OfferRedemptionModel, error)
	ToEntities(models []*models.OfferRedemptionModel) ([]*offer.Redemption, error)
}

type RedemptionMapperImpl struct{}

func NewRedemptionMapper() RedemptionMapper {
	return &RedemptionMapperImpl{}
}

func (m *RedemptionMapperImpl) ToEntity(model *models.OfferRedemptionModel) (*offer.Redemption, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := offer.ReconstructRedemption(
		model.ID,
		model.SID,
		model.OfferSID,
		model.MemberSID,
		model.SubscriptionSID,
		model.RedeemedAt,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct redemption: %w", err)
	}

	return entity, nil
}

func (m *RedemptionMapperImpl) ToModel(entity *offer.Redemption) (*models.OfferRedemptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OfferRedemptionModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		OfferSID:        entity.OfferSID(),
		MemberSID:       entity.MemberSID(),
		SubscriptionSID: entity.SubscriptionSID(),
		RedeemedAt:      entity.RedeemedAt(),
		CreatedAt:       entity.CreatedAt(),
	}, nil
}

func (m *RedemptionMapperImpl) ToEntities(redemptionModels []*models.OfferRedemptionModel) ([]*offer.Redemption, error) {
	entities := make([]*offer.Redemption, 0, len(redemptionModels))
	for _, model := range redemptionModels {
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
