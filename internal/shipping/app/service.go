package app

import (
	"context"
	"strings"

	"github.com/forcedowels/storefront/internal/apperr"
	"github.com/forcedowels/storefront/internal/shipping/domain"
)

// RateProvider shapes a quote request for one carrier's API. No rate math
// happens locally.
type RateProvider interface {
	Rates(ctx context.Context, dest domain.Destination, weightPounds int64) ([]domain.RateOption, error)
}

type Service struct {
	parcel           RateProvider
	freight          RateProvider
	freightMinPounds int64
}

func NewService(parcel, freight RateProvider, freightMinPounds int64) *Service {
	return &Service{
		parcel:           parcel,
		freight:          freight,
		freightMinPounds: freightMinPounds,
	}
}

func (s *Service) GetRates(ctx context.Context, req domain.RateRequest) (domain.Quote, error) {
	if err := validateDestination(req.Destination); err != nil {
		return domain.Quote{}, err
	}
	if len(req.Items) == 0 {
		return domain.Quote{}, apperr.New(apperr.Invalid, "cart is empty")
	}

	weight := domain.EstimateWeightPounds(req.Items)
	carrier := domain.SelectCarrier(weight, s.freightMinPounds)

	provider := s.parcel
	if carrier == domain.CarrierFreight {
		provider = s.freight
	}

	options, err := provider.Rates(ctx, req.Destination, weight)
	if err != nil {
		return domain.Quote{}, apperr.Wrap(apperr.Upstream, "fetch shipping rates", err)
	}

	return domain.Quote{
		Carrier:      carrier,
		WeightPounds: weight,
		Options:      options,
	}, nil
}

func validateDestination(d domain.Destination) error {
	switch {
	case strings.TrimSpace(d.Street) == "":
		return apperr.New(apperr.Invalid, "street is required")
	case strings.TrimSpace(d.City) == "":
		return apperr.New(apperr.Invalid, "city is required")
	case strings.TrimSpace(d.State) == "":
		return apperr.New(apperr.Invalid, "state is required")
	case strings.TrimSpace(d.Zip) == "":
		return apperr.New(apperr.Invalid, "zip is required")
	}
	return nil
}
