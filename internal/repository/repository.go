package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ayo6706/loan-origination/internal/models"
)

// NextMerchantID allocates the next merchant identifier.
func (s *Store) NextMerchantID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	s.lastMerchantID++
	return s.lastMerchantID, nil
}

// GetMerchant returns the configuration stored under id or ErrNotFound.
func (s *Store) GetMerchant(ctx context.Context, id int64) (*models.MerchantConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	m, ok := s.merchants[id]
	if !ok {
		return nil, fmt.Errorf("get merchant %d: %w", id, ErrNotFound)
	}
	return &m, nil
}

// PutMerchant stores m, replacing any record with the same id.
func (s *Store) PutMerchant(ctx context.Context, m models.MerchantConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.merchants[m.MerchantID] = m
	// Keep the sequence ahead of explicitly written ids.
	if m.MerchantID > s.lastMerchantID {
		s.lastMerchantID = m.MerchantID
	}
	return nil
}

// CountMerchants returns the number of stored configurations.
func (s *Store) CountMerchants(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return len(s.merchants), nil
}

// NextLoanApplicationID allocates the next loan application identifier.
func (s *Store) NextLoanApplicationID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	s.lastAppID++
	return s.lastAppID, nil
}

// GetLoanApplication returns the application stored under id or ErrNotFound.
func (s *Store) GetLoanApplication(ctx context.Context, id int64) (*models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	app, ok := s.apps[id]
	if !ok {
		return nil, fmt.Errorf("get loan application %d: %w", id, ErrNotFound)
	}
	app = cloneApplication(app)
	return &app, nil
}

// PutLoanApplication stores app, replacing any record with the same id.
func (s *Store) PutLoanApplication(ctx context.Context, app models.LoanApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.apps[app.LoanApplicationID] = cloneApplication(app)
	if app.LoanApplicationID > s.lastAppID {
		s.lastAppID = app.LoanApplicationID
	}
	return nil
}

func cloneApplication(app models.LoanApplication) models.LoanApplication {
	app.UserInputEvents = append([]json.RawMessage{}, app.UserInputEvents...)
	app.DecisionEvents = append([]json.RawMessage{}, app.DecisionEvents...)
	return app
}
