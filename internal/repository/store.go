package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/ayo6706/loan-origination/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrClosed   = errors.New("store is closed")
)

// Store is the process-local record store for merchant configurations and
// loan applications. Contents do not survive a restart.
type Store struct {
	mu        sync.RWMutex
	closed    bool
	merchants map[int64]models.MerchantConfiguration
	apps      map[int64]models.LoanApplication

	lastMerchantID int64
	lastAppID      int64
}

// NewStore creates an empty, ready-to-use store.
func NewStore() *Store {
	s := &Store{}
	s.clear()
	return s
}

// Init prepares the store for use. It is safe to call on a fresh store and
// reopens a closed one.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.merchants == nil || s.closed {
		s.clear()
	}
	s.closed = false
	return ctx.Err()
}

// Reset drops every record and restarts the id sequences at 1.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.clear()
	return ctx.Err()
}

// Close releases the records. Subsequent operations fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.merchants = nil
	s.apps = nil
	return nil
}

// Ping reports whether the store can serve requests.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *Store) clear() {
	s.merchants = make(map[int64]models.MerchantConfiguration)
	s.apps = make(map[int64]models.LoanApplication)
	s.lastMerchantID = 0
	s.lastAppID = 0
}
