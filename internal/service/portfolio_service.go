// Package service coordinates the transaction store, the NAV provider, and
// the calculation engines into portfolio-level operations. The calculation
// engines themselves never touch the network or disk: this layer assembles
// the price map first and hands plain records down.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/request"
	"github.com/mfolio/mf-portfolio-tracker/internal/gains"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
	"github.com/mfolio/mf-portfolio-tracker/internal/store"
)

// NAVProvider supplies current prices for instruments. Implemented by the
// mfapi client; tests substitute a fake.
type NAVProvider interface {
	LatestNAVs(ctx context.Context, instrumentIDs []string) (map[string]model.NAV, error)
}

// GainsConfig carries the holding-period thresholds and the long-term
// exemption used for capital gains classification and tax reporting.
type GainsConfig struct {
	EquityLongTermDays int
	DebtLongTermDays   int
	LongTermExemption  float64
}

// DefaultGainsConfig returns the reference-regime thresholds: one year for
// equity, three years for debt, and a 1 lakh long-term exemption.
func DefaultGainsConfig() GainsConfig {
	return GainsConfig{
		EquityLongTermDays: gains.EquityLongTermDays,
		DebtLongTermDays:   gains.DebtLongTermDays,
		LongTermExemption:  gains.DefaultLongTermExemption,
	}
}

// PortfolioService handles portfolio-level business logic: holdings and
// summary views, realized and unrealized capital gains, and transaction
// bookkeeping.
type PortfolioService struct {
	store  *store.Store
	nav    NAVProvider
	cfg    GainsConfig
	logger zerolog.Logger
}

// NewPortfolioService creates a PortfolioService over the given store and
// NAV provider.
func NewPortfolioService(st *store.Store, nav NAVProvider, cfg GainsConfig, logger zerolog.Logger) *PortfolioService {
	return &PortfolioService{
		store:  st,
		nav:    nav,
		cfg:    cfg,
		logger: logger,
	}
}

// Holdings computes the current average-cost holdings snapshot, valued at
// the latest available NAVs.
func (s *PortfolioService) Holdings(ctx context.Context) ([]model.Holding, error) {
	transactions := s.store.Transactions()
	prices, names, err := s.priceMap(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeHoldings(transactions, prices, names), nil
}

// Summary computes the portfolio-wide summary including the aggregate XIRR,
// as of now.
func (s *PortfolioService) Summary(ctx context.Context) (PortfolioSummary, error) {
	transactions := s.store.Transactions()
	prices, names, err := s.priceMap(ctx)
	if err != nil {
		return PortfolioSummary{}, err
	}

	summary := ComputeSummary(transactions, prices, names, time.Now())
	if summary.XIRRPct == nil && len(transactions) > 0 {
		s.logger.Warn().Int("transactions", len(transactions)).Msg("portfolio XIRR could not be computed")
	}
	return summary, nil
}

// RealizedGains runs the FIFO engine over the transaction log and returns
// the matched gain records plus their tax summary. When instrumentID is
// non-empty only that instrument is evaluated; otherwise every instrument
// is, each with the threshold for its asset class.
func (s *PortfolioService) RealizedGains(instrumentID string) ([]model.CapitalGain, gains.Summary, error) {
	var records []model.CapitalGain

	for _, inst := range s.instrumentsToEvaluate(instrumentID) {
		transactions := s.store.TransactionsFor(inst.ID)
		if len(transactions) == 0 {
			continue
		}

		matched, err := gains.Realized(transactions, s.longTermDays(inst.AssetClass))
		if err != nil {
			return nil, gains.Summary{}, fmt.Errorf("realized gains for %s: %w", inst.ID, err)
		}
		records = append(records, matched...)
	}

	return records, gains.Summarize(records, s.cfg.LongTermExemption), nil
}

// UnrealizedGains values the lots still held against the latest NAVs as of
// now, classified by the holding period each lot would have if sold today.
func (s *PortfolioService) UnrealizedGains(ctx context.Context, instrumentID string) ([]model.CapitalGain, gains.Summary, error) {
	prices, _, err := s.priceMap(ctx)
	if err != nil {
		return nil, gains.Summary{}, err
	}

	asOf := time.Now()
	var records []model.CapitalGain

	for _, inst := range s.instrumentsToEvaluate(instrumentID) {
		transactions := s.store.TransactionsFor(inst.ID)
		if len(transactions) == 0 {
			continue
		}

		price, ok := prices[inst.ID]
		if !ok {
			s.logger.Warn().Str("instrument_id", inst.ID).Msg("skipping unrealized gains, no NAV available")
			continue
		}

		open, err := gains.Unrealized(transactions, price, asOf, s.longTermDays(inst.AssetClass))
		if err != nil {
			return nil, gains.Summary{}, fmt.Errorf("unrealized gains for %s: %w", inst.ID, err)
		}
		records = append(records, open...)
	}

	return records, gains.Summarize(records, s.cfg.LongTermExemption), nil
}

// Performers returns the top holdings by return percentage.
func (s *PortfolioService) Performers(ctx context.Context, limit int) ([]model.Holding, error) {
	holdings, err := s.Holdings(ctx)
	if err != nil {
		return nil, err
	}
	return TopPerformers(holdings, limit), nil
}

// HoldingsByAssetClass groups the current holdings by their instrument's
// asset class. Instruments without registered metadata group under the
// empty key.
func (s *PortfolioService) HoldingsByAssetClass(ctx context.Context) (map[model.AssetClass][]model.Holding, error) {
	holdings, err := s.Holdings(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[model.AssetClass][]model.Holding)
	for _, h := range holdings {
		var class model.AssetClass
		if inst, err := s.store.Instrument(h.InstrumentID); err == nil {
			class = inst.AssetClass
		}
		grouped[class] = append(grouped[class], h)
	}
	return grouped, nil
}

// Transactions returns the transaction log, optionally filtered to one
// instrument.
func (s *PortfolioService) Transactions(instrumentID string) []model.Transaction {
	if instrumentID == "" {
		return s.store.Transactions()
	}
	return s.store.TransactionsFor(instrumentID)
}

// CreateTransaction records a new buy or sell. The amount is derived from
// quantity and unit price; instrument metadata on the request registers or
// updates the instrument.
func (s *PortfolioService) CreateTransaction(req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:           uuid.New().String(),
		InstrumentID: req.InstrumentID,
		Date:         date,
		Direction:    model.Direction(req.Direction),
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Amount:       req.Quantity * req.UnitPrice,
		CreatedAt:    time.Now(),
	}

	if req.Name != "" || req.AssetClass != "" {
		inst := model.Instrument{
			ID:         req.InstrumentID,
			Name:       req.Name,
			AssetClass: model.AssetClass(req.AssetClass),
		}
		if err := s.store.UpsertInstrument(inst); err != nil {
			return nil, fmt.Errorf("failed to register instrument: %w", err)
		}
	}

	if err := s.store.AddTransaction(*transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.logger.Info().
		Str("instrument_id", transaction.InstrumentID).
		Str("direction", string(transaction.Direction)).
		Float64("quantity", transaction.Quantity).
		Float64("unit_price", transaction.UnitPrice).
		Msg("transaction recorded")

	return transaction, nil
}

// DeleteTransaction removes a transaction from the log by ID.
func (s *PortfolioService) DeleteTransaction(id string) error {
	return s.store.DeleteTransaction(id)
}

// priceMap assembles the latest NAV per instrument and a name lookup for
// display. Instruments whose NAV is unavailable are simply absent from the
// price map; holdings for them value at zero.
func (s *PortfolioService) priceMap(ctx context.Context) (map[string]float64, map[string]string, error) {
	instruments := s.instrumentsToEvaluate("")

	ids := make([]string, len(instruments))
	names := make(map[string]string, len(instruments))
	for i, inst := range instruments {
		ids[i] = inst.ID
		names[inst.ID] = inst.Name
	}

	navs, err := s.nav.LatestNAVs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch NAVs: %w", err)
	}

	prices := make(map[string]float64, len(navs))
	for id, nav := range navs {
		prices[id] = nav.Value
	}
	return prices, names, nil
}

// instrumentsToEvaluate resolves the instrument filter: a single instrument,
// or every instrument appearing in the registry or the transaction log.
// Unregistered instruments classify with the equity threshold.
func (s *PortfolioService) instrumentsToEvaluate(instrumentID string) []model.Instrument {
	if instrumentID != "" {
		inst, err := s.store.Instrument(instrumentID)
		if err != nil {
			return []model.Instrument{{ID: instrumentID, AssetClass: model.AssetClassEquity}}
		}
		return []model.Instrument{inst}
	}

	instruments := s.store.Instruments()
	known := make(map[string]bool, len(instruments))
	for _, inst := range instruments {
		known[inst.ID] = true
	}
	for _, t := range s.store.Transactions() {
		if !known[t.InstrumentID] {
			known[t.InstrumentID] = true
			instruments = append(instruments, model.Instrument{ID: t.InstrumentID, AssetClass: model.AssetClassEquity})
		}
	}
	return instruments
}

// longTermDays maps an asset class to its long-term holding threshold.
// Anything that is not debt-like classifies with the equity threshold.
func (s *PortfolioService) longTermDays(class model.AssetClass) int {
	if class == model.AssetClassDebt {
		return s.cfg.DebtLongTermDays
	}
	return s.cfg.EquityLongTermDays
}
