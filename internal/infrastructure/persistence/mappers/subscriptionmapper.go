package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/subscription/valueobjects"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	price, err := vo.NewPlanPrice(model.PriceAmount, vo.PlanInterval(model.PriceInterval), model.PriceCurrency, model.PriceNickname)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild plan price: %w", err)
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entity, err := subscription.ReconstructSubscription(subscription.ReconstructParams{
		ID:                model.ID,
		SID:               model.SID,
		MemberSID:         model.MemberSID,
		ProviderID:        model.ProviderID,
		Status:            status,
		Price:             price,
		StartDate:         model.StartDate,
		CurrentPeriodEnd:  model.CurrentPeriodEnd,
		CancelAtPeriodEnd: model.CancelAtPeriodEnd,
		DiscountStart:     model.DiscountStart,
		DiscountEnd:       model.DiscountEnd,
		TrialStartAt:      model.TrialStartAt,
		TrialEndAt:        model.TrialEndAt,
		OfferSID:          model.OfferSID,
		Metadata:          metadata,
		Version:           model.Version,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadata datatypes.JSON
	if len(entity.Metadata()) > 0 {
		data, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = data
	}

	price := entity.Price()
	return &models.SubscriptionModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		MemberSID:         entity.MemberSID(),
		ProviderID:        entity.ProviderID(),
		Status:            entity.Status().String(),
		PriceAmount:       price.Amount(),
		PriceInterval:     string(price.Interval()),
		PriceCurrency:     price.Currency(),
		PriceNickname:     price.Nickname(),
		StartDate:         entity.StartDate(),
		CurrentPeriodEnd:  entity.CurrentPeriodEnd(),
		CancelAtPeriodEnd: entity.CancelAtPeriodEnd(),
		DiscountStart:     entity.DiscountStart(),
		DiscountEnd:       entity.DiscountEnd(),
		TrialStartAt:      entity.TrialStartAt(),
		TrialEndAt:        entity.TrialEndAt(),
		OfferSID:          entity.OfferSID(),
		Metadata:          metadata,
		Version:           entity.Version(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subscriptionModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subscriptionModels))
	for _, model := range subscriptionModels {
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
