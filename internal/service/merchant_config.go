package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ayo6706/loan-origination/internal/domain"
	"github.com/ayo6706/loan-origination/internal/models"
	"github.com/ayo6706/loan-origination/internal/observability"
	"github.com/ayo6706/loan-origination/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MerchantConfigInput is the `data` object of a merchant configuration request,
// kept undecoded so every field can be validated on its own.
type MerchantConfigInput struct {
	MerchantID        json.RawMessage `json:"merchant_id,omitempty"`
	Name              json.RawMessage `json:"name"`
	MinimumLoanAmount json.RawMessage `json:"minimum_loan_amount"`
	MaximumLoanAmount json.RawMessage `json:"maximum_loan_amount"`
	PrequalEnabled    json.RawMessage `json:"prequal_enabled"`
}

type merchantFields struct {
	name           string
	minimum        decimal.Decimal
	maximum        decimal.Decimal
	prequalEnabled bool
}

type MerchantConfigService struct {
	store MerchantStore
}

func NewMerchantConfigService(store MerchantStore) *MerchantConfigService {
	return &MerchantConfigService{store: store}
}

// Get returns the configuration for id. A missing merchant reports found=false
// with a nil error.
func (s *MerchantConfigService) Get(ctx context.Context, id int64) (*models.MerchantConfiguration, bool, error) {
	m, err := s.store.GetMerchant(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		observability.IncrementMerchantConfig("get", "not_found")
		return nil, false, nil
	}
	if err != nil {
		observability.IncrementMerchantConfig("get", "error")
		return nil, false, fmt.Errorf("get merchant configuration: %w", err)
	}
	observability.IncrementMerchantConfig("get", "ok")
	return m, true, nil
}

// Create stores a new configuration under a freshly allocated merchant id.
// A supplied merchant_id is only used to detect duplicates: it yields
// ErrAlreadyExists when taken and ErrInvalidRequest otherwise.
func (s *MerchantConfigService) Create(ctx context.Context, in MerchantConfigInput) (*models.MerchantConfiguration, error) {
	m, err := s.create(ctx, in)
	observability.IncrementMerchantConfig("create", outcome(err))
	if err != nil {
		zap.L().Debug("merchant configuration rejected", zap.String("operation", "create"), zap.Error(err))
		return nil, err
	}
	zap.L().Info("merchant configuration created", zap.Int64("merchant_id", m.MerchantID), zap.String("name", m.Name))
	s.reportStored(ctx)
	return m, nil
}

type merchantCounter interface {
	CountMerchants(ctx context.Context) (int, error)
}

func (s *MerchantConfigService) reportStored(ctx context.Context) {
	c, ok := s.store.(merchantCounter)
	if !ok {
		return
	}
	if n, err := c.CountMerchants(ctx); err == nil {
		observability.SetStoredMerchants(n)
	}
}

func (s *MerchantConfigService) create(ctx context.Context, in MerchantConfigInput) (*models.MerchantConfiguration, error) {
	// Existence is decided before anything else is validated.
	if !isNull(in.MerchantID) {
		existing, err := s.lookup(ctx, in.MerchantID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.NewFieldError(domain.ErrAlreadyExists, "merchant_id", domain.MsgMerchantAlreadyExists)
		}
		return nil, domain.NewFieldError(domain.ErrInvalidRequest, "merchant_id", domain.MsgMerchantIDAssigned)
	}

	f, err := parseMerchantFields(in)
	if err != nil {
		return nil, err
	}
	if !ValidRange(f.minimum, f.maximum) {
		return nil, domain.NewFieldError(domain.ErrInvalidRange, "maximum_loan_amount", domain.MsgInvalidRange)
	}

	id, err := s.store.NextMerchantID(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate merchant id: %w", err)
	}
	m := f.record(id)
	if err := s.store.PutMerchant(ctx, m); err != nil {
		return nil, fmt.Errorf("store merchant configuration: %w", err)
	}
	return &m, nil
}

// Update replaces the whole configuration of an existing merchant.
func (s *MerchantConfigService) Update(ctx context.Context, in MerchantConfigInput) (*models.MerchantConfiguration, error) {
	m, err := s.update(ctx, in)
	observability.IncrementMerchantConfig("update", outcome(err))
	if err != nil {
		zap.L().Debug("merchant configuration rejected", zap.String("operation", "update"), zap.Error(err))
		return nil, err
	}
	zap.L().Info("merchant configuration updated", zap.Int64("merchant_id", m.MerchantID), zap.String("name", m.Name))
	return m, nil
}

func (s *MerchantConfigService) update(ctx context.Context, in MerchantConfigInput) (*models.MerchantConfiguration, error) {
	if isNull(in.MerchantID) {
		return nil, domain.InvalidRequest("merchant_id")
	}
	existing, err := s.lookup(ctx, in.MerchantID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewFieldError(domain.ErrNotFound, "merchant_id", domain.MsgMerchantIDDoesNotExist)
	}

	f, err := parseMerchantFields(in)
	if err != nil {
		return nil, err
	}
	if !ValidRange(f.minimum, f.maximum) {
		return nil, domain.NewFieldError(domain.ErrInvalidRange, "maximum_loan_amount", domain.MsgInvalidRange)
	}

	m := f.record(existing.MerchantID)
	if err := s.store.PutMerchant(ctx, m); err != nil {
		return nil, fmt.Errorf("store merchant configuration: %w", err)
	}
	return &m, nil
}

// lookup returns nil when raw cannot name a stored merchant.
func (s *MerchantConfigService) lookup(ctx context.Context, raw json.RawMessage) (*models.MerchantConfiguration, error) {
	id, ok := recordKey(raw)
	if !ok {
		return nil, nil
	}
	m, err := s.store.GetMerchant(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup merchant configuration: %w", err)
	}
	return m, nil
}

func parseMerchantFields(in MerchantConfigInput) (merchantFields, error) {
	var (
		f   merchantFields
		err error
	)
	if f.name, err = requireString("name", in.Name); err != nil {
		return f, err
	}
	if f.minimum, err = requireDecimal("minimum_loan_amount", in.MinimumLoanAmount); err != nil {
		return f, err
	}
	if f.maximum, err = requireDecimal("maximum_loan_amount", in.MaximumLoanAmount); err != nil {
		return f, err
	}
	if f.prequalEnabled, err = optionalBool("prequal_enabled", in.PrequalEnabled); err != nil {
		return f, err
	}
	return f, nil
}

func (f merchantFields) record(id int64) models.MerchantConfiguration {
	return models.MerchantConfiguration{
		MerchantID:        id,
		Name:              f.name,
		MinimumLoanAmount: f.minimum,
		MaximumLoanAmount: f.maximum,
		PrequalEnabled:    f.prequalEnabled,
	}
}
