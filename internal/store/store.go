// Package store persists the portfolio's transaction log and instrument
// metadata in a single JSON document on disk. The whole document is loaded
// at open and rewritten on every mutation; concurrent writers are
// serialized here so the calculation engines can stay lock-free and pure.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

// document is the on-disk shape of the portfolio file.
type document struct {
	Instruments  []model.Instrument  `json:"instruments"`
	Transactions []model.Transaction `json:"transactions"`
	LastUpdated  time.Time           `json:"last_updated"`
}

// Store is a file-backed transaction store. All methods are safe for
// concurrent use.
type Store struct {
	path string

	mu   sync.RWMutex
	data document
}

// Open loads the portfolio document at path, creating an empty store when
// the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio file %s: %w", path, err)
	}

	sortTransactions(s.data.Transactions)
	return s, nil
}

// Transactions returns a copy of the full transaction log, sorted by date
// ascending with ties in insertion order.
func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Transaction, len(s.data.Transactions))
	copy(out, s.data.Transactions)
	return out
}

// TransactionsFor returns a copy of the transactions for one instrument.
func (s *Store) TransactionsFor(instrumentID string) []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Transaction
	for _, t := range s.data.Transactions {
		if t.InstrumentID == instrumentID {
			out = append(out, t)
		}
	}
	return out
}

// AddTransaction appends a transaction to the log, keeps the log
// date-sorted, and persists the document.
func (s *Store) AddTransaction(t model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Transactions = append(s.data.Transactions, t)
	sortTransactions(s.data.Transactions)
	return s.save()
}

// DeleteTransaction removes the transaction with the given ID.
// Returns apperrors.ErrTransactionNotFound when no such transaction exists.
func (s *Store) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.data.Transactions {
		if t.ID == id {
			s.data.Transactions = append(s.data.Transactions[:i], s.data.Transactions[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, id)
}

// Instruments returns a copy of all registered instruments.
func (s *Store) Instruments() []model.Instrument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Instrument, len(s.data.Instruments))
	copy(out, s.data.Instruments)
	return out
}

// Instrument looks up one instrument by ID.
// Returns apperrors.ErrInstrumentNotFound when it is not registered.
func (s *Store) Instrument(id string) (model.Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inst := range s.data.Instruments {
		if inst.ID == id {
			return inst, nil
		}
	}
	return model.Instrument{}, fmt.Errorf("%w: %s", apperrors.ErrInstrumentNotFound, id)
}

// UpsertInstrument registers an instrument or updates its metadata.
func (s *Store) UpsertInstrument(inst model.Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.data.Instruments {
		if existing.ID == inst.ID {
			s.data.Instruments[i] = inst
			return s.save()
		}
	}
	s.data.Instruments = append(s.data.Instruments, inst)
	return s.save()
}

// save writes the document to disk. Callers must hold the write lock.
func (s *Store) save() error {
	s.data.LastUpdated = time.Now()

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode portfolio: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write portfolio file: %w", err)
	}
	return nil
}

// sortTransactions orders by date ascending; equal dates keep their current
// order so FIFO tie-breaking stays stable.
func sortTransactions(transactions []model.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})
}
