package store

import (
	"context"
	"strings"
	"sync"

	"fjacquet/biztrack/internal/kvstore"
	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/logging"
	"fjacquet/biztrack/internal/models"
)

// SettingsStore holds the singleton AppSettings stored under KeySettings.
type SettingsStore struct {
	mu        sync.Mutex
	kv        kvstore.Store
	logger    logging.Logger
	listeners listeners
}

// NewSettingsStore creates a SettingsStore persisting through kv.
func NewSettingsStore(kv kvstore.Store, logger logging.Logger) *SettingsStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &SettingsStore{
		kv:     kv,
		logger: logger.WithField(logging.FieldComponent, "settings"),
	}
}

// Subscribe registers fn to be called after every successful write.
func (s *SettingsStore) Subscribe(fn Listener) {
	s.listeners.add(fn)
}

// Get returns the stored settings, or DefaultSettings when none were ever saved.
func (s *SettingsStore) Get(ctx context.Context) (models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Set replaces the whole settings object.
func (s *SettingsStore) Set(ctx context.Context, settings models.AppSettings) error {
	s.mu.Lock()
	err := s.save(ctx, settings)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.listeners.notify(ChangeEvent{Kind: ChangeSettings})
	return nil
}

// AddCategory appends name to the list for typ. It reports false with ErrDuplicateCategory
// when the name is already present ignoring case, and changes nothing.
func (s *SettingsStore) AddCategory(ctx context.Context, typ models.TransactionType, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, &ledgererror.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if !typ.IsValid() {
		return false, &ledgererror.ValidationError{Field: "type", Value: string(typ), Reason: "must be INCOME or EXPENSE"}
	}

	s.mu.Lock()
	current, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if current.HasCategory(typ, name) {
		s.mu.Unlock()
		return false, &ledgererror.ValidationError{Field: "category", Value: name, Reason: "already exists", Err: ledgererror.ErrDuplicateCategory}
	}

	next := current.WithCategories(typ, append(current.Clone().Categories(typ), name))
	err = s.save(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	s.logger.Info("Added category", logging.F(logging.FieldType, string(typ)), logging.F(logging.FieldCategory, name))
	s.listeners.notify(ChangeEvent{Kind: ChangeSettings})
	return true, nil
}

// RemoveCategory filters every exact match of name out of the list for typ.
// Transactions already using the category are not touched.
func (s *SettingsStore) RemoveCategory(ctx context.Context, typ models.TransactionType, name string) error {
	if !typ.IsValid() {
		return &ledgererror.ValidationError{Field: "type", Value: string(typ), Reason: "must be INCOME or EXPENSE"}
	}

	s.mu.Lock()
	current, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	kept := make([]string, 0, len(current.Categories(typ)))
	for _, c := range current.Categories(typ) {
		if c != name {
			kept = append(kept, c)
		}
	}
	err = s.save(ctx, current.WithCategories(typ, kept))
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Info("Removed category", logging.F(logging.FieldType, string(typ)), logging.F(logging.FieldCategory, name))
	s.listeners.notify(ChangeEvent{Kind: ChangeSettings})
	return nil
}

// UpdateCurrencies changes the currency codes and the dual-currency flag, keeping categories.
func (s *SettingsStore) UpdateCurrencies(ctx context.Context, main, secondary string, dual bool) (models.AppSettings, error) {
	main = strings.ToUpper(strings.TrimSpace(main))
	secondary = strings.ToUpper(strings.TrimSpace(secondary))
	if main == "" {
		return models.AppSettings{}, &ledgererror.ValidationError{Field: "currencyMain", Reason: "must not be empty"}
	}
	if dual && secondary == "" {
		return models.AppSettings{}, &ledgererror.ValidationError{Field: "currencySecondary", Reason: "required when dual currency is enabled"}
	}

	s.mu.Lock()
	current, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return models.AppSettings{}, err
	}
	next := current.Clone()
	next.CurrencyMain = main
	next.CurrencySecondary = secondary
	next.EnableDualCurrency = dual
	err = s.save(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return models.AppSettings{}, err
	}

	s.logger.Info("Updated currencies",
		logging.F("main", main),
		logging.F("secondary", secondary),
		logging.F("dual", dual))
	s.listeners.notify(ChangeEvent{Kind: ChangeSettings})
	return next, nil
}

func (s *SettingsStore) load(ctx context.Context) (models.AppSettings, error) {
	raw, found, err := s.kv.Get(ctx, models.KeySettings)
	if err != nil {
		return models.AppSettings{}, ledgererror.Unreadable(models.KeySettings, err)
	}
	if !found {
		return models.DefaultSettings(), nil
	}

	// Fields missing from an older stored object keep their default values.
	settings := models.DefaultSettings()
	if err := decode(models.KeySettings, raw, &settings); err != nil {
		s.logger.WithError(err).Error("Stored settings are unreadable")
		return models.AppSettings{}, err
	}
	return settings, nil
}

func (s *SettingsStore) save(ctx context.Context, settings models.AppSettings) error {
	out := settings.Clone()
	if out.CategoriesIncome == nil {
		out.CategoriesIncome = []string{}
	}
	if out.CategoriesExpense == nil {
		out.CategoriesExpense = []string{}
	}
	data, err := encode(models.KeySettings, out)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, models.KeySettings, data); err != nil {
		return &ledgererror.StorageError{Key: models.KeySettings, Op: "write", Err: err}
	}
	return nil
}
