package service

import (
	"context"

	"github.com/ayo6706/loan-origination/internal/models"
)

// MerchantStore is the data access contract for merchant configurations.
type MerchantStore interface {
	NextMerchantID(ctx context.Context) (int64, error)
	GetMerchant(ctx context.Context, id int64) (*models.MerchantConfiguration, error)
	PutMerchant(ctx context.Context, m models.MerchantConfiguration) error
}

// LoanApplicationStore is the data access contract for loan applications.
type LoanApplicationStore interface {
	NextLoanApplicationID(ctx context.Context) (int64, error)
	GetLoanApplication(ctx context.Context, id int64) (*models.LoanApplication, error)
	PutLoanApplication(ctx context.Context, app models.LoanApplication) error
}
