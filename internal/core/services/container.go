package services

import (
	portsprov "github.com/selimgur/kiraci/internal/core/ports/providers"
	portsrepo "github.com/selimgur/kiraci/internal/core/ports/repositories"
	portssvc "github.com/selimgur/kiraci/internal/core/ports/services"
)

// NewContainer creates a service container with properly initialized
// dependencies.
func NewContainer(
	repos *portsrepo.RepositoryProvider,
	rateProvider portsprov.RateProvider,
	inflationProvider portsprov.InflationProvider,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Agreement:    NewAgreementService(repos.AgreementRepo),
		ExchangeRate: NewExchangeRateService(repos.ExchangeRateRepo, rateProvider),
		Inflation:    NewInflationService(repos.InflationRepo, inflationProvider),
		Payment:      NewPaymentService(repos.AgreementRepo, repos.ExchangeRateRepo, repos.PaymentRepo),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.AgreementSvcFacade    = (*AgreementService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.InflationSvcFacade    = (*InflationService)(nil)
	_ portssvc.PaymentSvcFacade      = (*PaymentService)(nil)
)
