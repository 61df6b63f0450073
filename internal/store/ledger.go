package store

import (
	"context"
	"sync"

	"fjacquet/biztrack/internal/kvstore"
	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/logging"
	"fjacquet/biztrack/internal/models"
)

// Ledger is the ordered, durable collection of transactions stored under KeyTransactions.
// Every mutation rewrites the whole list before returning.
type Ledger struct {
	mu        sync.Mutex
	kv        kvstore.Store
	logger    logging.Logger
	listeners listeners
}

// NewLedger creates a Ledger persisting through kv.
func NewLedger(kv kvstore.Store, logger logging.Logger) *Ledger {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Ledger{
		kv:     kv,
		logger: logger.WithField(logging.FieldComponent, "ledger"),
	}
}

// Subscribe registers fn to be called after every successful Upsert or Remove.
func (l *Ledger) Subscribe(fn Listener) {
	l.listeners.add(fn)
}

// List returns every transaction in storage order. A ledger that was never written is empty;
// a stored value that cannot be decoded yields a StorageError wrapping ErrStorageUnreadable.
func (l *Ledger) List(ctx context.Context) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Get returns the transaction with id, if present.
func (l *Ledger) Get(ctx context.Context, id string) (models.Transaction, bool, error) {
	txs, err := l.List(ctx)
	if err != nil {
		return models.Transaction{}, false, err
	}
	for _, t := range txs {
		if t.ID == id {
			return t, true, nil
		}
	}
	return models.Transaction{}, false, nil
}

// Upsert replaces the record with the same id, keeping its position, or appends it.
// The record is validated first; on any error the stored list is left untouched.
func (l *Ledger) Upsert(ctx context.Context, t models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	txs, err := l.load(ctx)
	if err != nil {
		l.mu.Unlock()
		return err
	}

	replaced := false
	for i := range txs {
		if txs[i].ID == t.ID {
			txs[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		txs = append(txs, t)
	}

	err = l.save(ctx, txs)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	l.logger.Debug("Upserted transaction",
		logging.F(logging.FieldTransactionID, t.ID),
		logging.F("replaced", replaced),
		logging.F(logging.FieldCount, len(txs)))
	l.listeners.notify(ChangeEvent{Kind: ChangeUpsert, ID: t.ID})
	return nil
}

// Remove deletes the transaction with id. Removing an unknown id is not an error and
// reports false.
func (l *Ledger) Remove(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	txs, err := l.load(ctx)
	if err != nil {
		l.mu.Unlock()
		return false, err
	}

	kept := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(txs)

	if removed {
		err = l.save(ctx, kept)
	}
	l.mu.Unlock()
	if err != nil {
		return false, err
	}

	if !removed {
		l.logger.Debug("Remove of unknown transaction ignored", logging.F(logging.FieldTransactionID, id))
		return false, nil
	}
	l.logger.Debug("Removed transaction", logging.F(logging.FieldTransactionID, id))
	l.listeners.notify(ChangeEvent{Kind: ChangeRemove, ID: id})
	return true, nil
}

func (l *Ledger) load(ctx context.Context) ([]models.Transaction, error) {
	raw, found, err := l.kv.Get(ctx, models.KeyTransactions)
	if err != nil {
		return nil, ledgererror.Unreadable(models.KeyTransactions, err)
	}
	if !found {
		return []models.Transaction{}, nil
	}

	var txs []models.Transaction
	if err := decode(models.KeyTransactions, raw, &txs); err != nil {
		l.logger.WithError(err).Error("Stored transactions are unreadable")
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

func (l *Ledger) save(ctx context.Context, txs []models.Transaction) error {
	data, err := encode(models.KeyTransactions, txs)
	if err != nil {
		return err
	}
	if err := l.kv.Put(ctx, models.KeyTransactions, data); err != nil {
		return &ledgererror.StorageError{Key: models.KeyTransactions, Op: "write", Err: err}
	}
	return nil
}
