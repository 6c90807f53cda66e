package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/store"
	"github.com/mfolio/mf-portfolio-tracker/internal/testutil"
)

// TestStore_OpenAndPersist tests the file round trip.
//
// WHY: The store rewrites the whole document on every mutation; a reopen
// must see exactly what was written, and a missing file must open as an
// empty portfolio rather than an error.
func TestStore_OpenAndPersist(t *testing.T) {
	t.Run("missing file opens empty", func(t *testing.T) {
		// Execute
		st, err := store.Open(filepath.Join(t.TempDir(), "portfolio.json"))

		// Assert
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		if len(st.Transactions()) != 0 || len(st.Instruments()) != 0 {
			t.Error("Expected an empty store for a missing file")
		}
	})

	t.Run("transactions survive a reopen", func(t *testing.T) {
		// Setup
		path := filepath.Join(t.TempDir(), "data", "portfolio.json")
		st, err := store.Open(path)
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}

		tx := testutil.BuyTransaction("120503", testutil.Date(2023, 1, 1), 100, 50)
		if err := st.AddTransaction(tx); err != nil {
			t.Fatalf("AddTransaction() returned unexpected error: %v", err)
		}
		inst := testutil.NewInstrument("120503").WithName("Persisted Fund").Build()
		if err := st.UpsertInstrument(inst); err != nil {
			t.Fatalf("UpsertInstrument() returned unexpected error: %v", err)
		}

		// Execute
		reopened, err := store.Open(path)

		// Assert
		if err != nil {
			t.Fatalf("Reopen returned unexpected error: %v", err)
		}

		transactions := reopened.Transactions()
		if len(transactions) != 1 {
			t.Fatalf("Expected 1 transaction after reopen, got %d", len(transactions))
		}
		if transactions[0].ID != tx.ID || transactions[0].Quantity != 100 {
			t.Errorf("Reopened transaction differs: %+v", transactions[0])
		}

		got, err := reopened.Instrument("120503")
		if err != nil {
			t.Fatalf("Instrument() returned unexpected error: %v", err)
		}
		if got.Name != "Persisted Fund" {
			t.Errorf("Expected instrument name to survive, got %q", got.Name)
		}
	})

	t.Run("log stays date sorted regardless of insertion order", func(t *testing.T) {
		// Setup
		st := testutil.NewTestStore(t)
		later := testutil.BuyTransaction("120503", testutil.Date(2023, 6, 1), 10, 60)
		earlier := testutil.BuyTransaction("120503", testutil.Date(2023, 1, 1), 10, 50)

		// Execute: insert newest first.
		if err := st.AddTransaction(later); err != nil {
			t.Fatalf("AddTransaction() returned unexpected error: %v", err)
		}
		if err := st.AddTransaction(earlier); err != nil {
			t.Fatalf("AddTransaction() returned unexpected error: %v", err)
		}

		// Assert
		transactions := st.Transactions()
		if !transactions[0].Date.Before(transactions[1].Date) {
			t.Errorf("Expected date-ascending log, got %v then %v", transactions[0].Date, transactions[1].Date)
		}
	})
}

// TestStore_DeleteTransaction tests removal semantics.
func TestStore_DeleteTransaction(t *testing.T) {
	t.Run("removes by id", func(t *testing.T) {
		// Setup
		st := testutil.NewTestStore(t)
		keep := testutil.BuyTransaction("120503", testutil.Date(2023, 1, 1), 10, 50)
		drop := testutil.BuyTransaction("120503", testutil.Date(2023, 2, 1), 20, 55)
		if err := st.AddTransaction(keep); err != nil {
			t.Fatalf("AddTransaction() returned unexpected error: %v", err)
		}
		if err := st.AddTransaction(drop); err != nil {
			t.Fatalf("AddTransaction() returned unexpected error: %v", err)
		}

		// Execute
		if err := st.DeleteTransaction(drop.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}

		// Assert
		remaining := st.Transactions()
		if len(remaining) != 1 || remaining[0].ID != keep.ID {
			t.Errorf("Expected only %s to remain, got %+v", keep.ID, remaining)
		}
	})

	t.Run("unknown id returns the sentinel", func(t *testing.T) {
		// Setup
		st := testutil.NewTestStore(t)

		// Execute
		err := st.DeleteTransaction("missing")

		// Assert
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

// TestStore_Instrument tests the registry lookups.
func TestStore_Instrument(t *testing.T) {
	t.Run("upsert updates in place", func(t *testing.T) {
		// Setup
		st := testutil.NewTestStore(t)
		if err := st.UpsertInstrument(testutil.NewInstrument("120503").WithName("Old Name").Build()); err != nil {
			t.Fatalf("UpsertInstrument() returned unexpected error: %v", err)
		}

		// Execute
		if err := st.UpsertInstrument(testutil.NewInstrument("120503").WithName("New Name").Build()); err != nil {
			t.Fatalf("UpsertInstrument() returned unexpected error: %v", err)
		}

		// Assert
		if got := st.Instruments(); len(got) != 1 {
			t.Fatalf("Expected 1 instrument after upsert, got %d", len(got))
		}
		inst, err := st.Instrument("120503")
		if err != nil {
			t.Fatalf("Instrument() returned unexpected error: %v", err)
		}
		if inst.Name != "New Name" {
			t.Errorf("Expected updated name, got %q", inst.Name)
		}
	})

	t.Run("unknown instrument returns the sentinel", func(t *testing.T) {
		// Setup
		st := testutil.NewTestStore(t)

		// Execute
		_, err := st.Instrument("missing")

		// Assert
		if !errors.Is(err, apperrors.ErrInstrumentNotFound) {
			t.Errorf("Expected ErrInstrumentNotFound, got %v", err)
		}
	})
}
