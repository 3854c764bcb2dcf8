package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayo6706/loan-origination/internal/domain"
	"github.com/ayo6706/loan-origination/internal/models"
	"github.com/ayo6706/loan-origination/internal/observability"
	"github.com/ayo6706/loan-origination/internal/repository"
	"go.uber.org/zap"
)

// LoanApplicationInput is the `data` object of a loan application submission.
type LoanApplicationInput struct {
	MerchantID           json.RawMessage `json:"merchant_id"`
	RequestedAmountCents json.RawMessage `json:"requested_amount_cents"`
	Currency             json.RawMessage `json:"currency"`
}

type LoanApplicationService struct {
	apps      LoanApplicationStore
	merchants MerchantStore
	apiPrefix string
	now       func() time.Time
}

// NewLoanApplicationService builds the intake service. apiPrefix is prepended
// to the submit_url handed back to borrowers.
func NewLoanApplicationService(apps LoanApplicationStore, merchants MerchantStore, apiPrefix string) *LoanApplicationService {
	return &LoanApplicationService{
		apps:      apps,
		merchants: merchants,
		apiPrefix: strings.TrimSuffix(apiPrefix, "/"),
		now:       time.Now,
	}
}

// Create validates a borrower submission and opens an application in the
// pending_identity state.
func (s *LoanApplicationService) Create(ctx context.Context, in LoanApplicationInput) (*models.NextStep, error) {
	app, err := s.create(ctx, in)
	observability.IncrementLoanApplication(outcome(err))
	if err != nil {
		zap.L().Debug("loan application rejected", zap.Error(err))
		return nil, err
	}

	requested := domain.NewMoney(domain.ToCents(app.RequestedAmount), app.Currency)
	amount, _ := requested.ToDecimal().Float64()
	observability.ObserveRequestedAmount(requested.Currency, amount)
	zap.L().Info("loan application created",
		zap.Int64("loan_application_id", app.LoanApplicationID),
		zap.Int64("merchant_id", app.MerchantID),
		zap.Stringer("requested", requested),
	)

	return &models.NextStep{
		LoanApplicationID: app.LoanApplicationID,
		NextStep:          domain.NextStepIdentity,
		SubmitURL:         s.submitURL(app.LoanApplicationID, domain.NextStepIdentity),
	}, nil
}

func (s *LoanApplicationService) create(ctx context.Context, in LoanApplicationInput) (*models.LoanApplication, error) {
	if isNull(in.MerchantID) {
		return nil, domain.InvalidRequest("merchant_id")
	}
	cents, err := requireInteger("requested_amount_cents", in.RequestedAmountCents)
	if err != nil {
		return nil, err
	}
	currency, err := requireString("currency", in.Currency)
	if err != nil {
		return nil, err
	}
	if !SupportedCurrency(currency) {
		return nil, domain.InvalidRequest("currency")
	}

	requested := domain.NewMoney(cents, strings.ToLower(currency))
	if !OriginationCurrency(requested.Currency) {
		return nil, domain.NewFieldError(domain.ErrUnsupportedCurrency, "currency", domain.MsgOnlyUSDSupported)
	}

	merchant, err := s.findMerchant(ctx, in.MerchantID)
	if err != nil {
		return nil, err
	}

	id, err := s.apps.NextLoanApplicationID(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate loan application id: %w", err)
	}
	app := models.LoanApplication{
		LoanApplicationID: id,
		State:             domain.StatePendingIdentity,
		MerchantID:        merchant.MerchantID,
		RequestedAmount:   requested.ToDecimal(),
		Currency:          requested.Currency,
		CreatedAt:         s.now().UTC(),
		UserInputEvents:   []json.RawMessage{},
		DecisionEvents:    []json.RawMessage{},
	}
	if err := s.apps.PutLoanApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("store loan application: %w", err)
	}
	return &app, nil
}

func (s *LoanApplicationService) findMerchant(ctx context.Context, raw json.RawMessage) (*models.MerchantConfiguration, error) {
	notFound := domain.NewFieldError(domain.ErrMerchantNotFound, "merchant_id", domain.MsgCouldNotFindMerchant)
	id, ok := recordKey(raw)
	if !ok {
		return nil, notFound
	}
	m, err := s.merchants.GetMerchant(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup merchant: %w", err)
	}
	return m, nil
}

// Get returns the stored application. A missing one reports found=false.
func (s *LoanApplicationService) Get(ctx context.Context, id int64) (*models.LoanApplication, bool, error) {
	app, err := s.apps.GetLoanApplication(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get loan application: %w", err)
	}
	return app, true, nil
}

func (s *LoanApplicationService) submitURL(id int64, step string) string {
	return fmt.Sprintf("POST %s/loan_application/%d/%s", s.apiPrefix, id, step)
}
