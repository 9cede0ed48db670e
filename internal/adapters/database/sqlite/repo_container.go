package sqlite

import (
	"database/sql"

	portsrepo "github.com/selimgur/kiraci/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all SQLite repositories into the provider
// consumed by the service container.
func NewRepositoryProvider(db *sql.DB) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AgreementRepo:    NewAgreementRepository(db),
		ExchangeRateRepo: NewExchangeRateRepository(db),
		InflationRepo:    NewInflationRepository(db),
		PaymentRepo:      NewPaymentRepository(db),
	}
}

// Compile-time interface checks.
var (
	_ portsrepo.AgreementRepositoryFacade    = (*SQLiteAgreementRepository)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*SQLiteExchangeRateRepository)(nil)
	_ portsrepo.InflationRepositoryFacade    = (*SQLiteInflationRepository)(nil)
	_ portsrepo.PaymentRepositoryFacade      = (*SQLitePaymentRepository)(nil)
)
