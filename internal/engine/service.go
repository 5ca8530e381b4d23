package engine

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"lifedash/internal/storage"
)

// Options configures a Service. Zero values fall back to the built-in defaults.
type Options struct {
	Epoch     time.Time
	BirthDate time.Time
	Location  *time.Location
	Now       func() time.Time
	Logger    *slog.Logger
}

type Service struct {
	db    *sql.DB
	kv    *storage.KVRepo
	store storage.Store

	epoch time.Time
	birth time.Time
	loc   *time.Location
	now   func() time.Time
	log   *slog.Logger
}

func NewService(db *sql.DB, opts Options) *Service {
	kv := storage.NewKVRepo(db)
	s := &Service{
		db:    db,
		kv:    kv,
		store: kv,
		epoch: opts.Epoch,
		birth: opts.BirthDate,
		loc:   opts.Location,
		now:   opts.Now,
		log:   opts.Logger,
	}
	if s.epoch.IsZero() {
		s.epoch = DefaultEpoch
	}
	if s.birth.IsZero() {
		s.birth = DefaultBirthDate
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	return s
}

func (s *Service) KVRepo() *storage.KVRepo  { return s.kv }
func (s *Service) Logger() *slog.Logger     { return s.log }
func (s *Service) Location() *time.Location { return s.loc }
func (s *Service) Epoch() time.Time         { return s.epoch }
func (s *Service) BirthDate() time.Time     { return s.birth }
func (s *Service) Now() time.Time           { return s.now().In(s.loc) }
func (s *Service) Age() int                 { return Age(s.birth, s.Now()) }

// State is the whole persisted dashboard with defaults applied.
type State struct {
	Resolutions  []Resolution
	TargetDate   string
	TargetLabel  string
	Transactions []Transaction
	Profile      Profile
	Appearance   Appearance
}

// DefaultState is what a fresh store reads as.
func DefaultState() State {
	return State{
		Resolutions:  DefaultResolutions(),
		TargetLabel:  DefaultTargetLabel,
		Transactions: []Transaction{},
		Profile:      DefaultProfile(),
		Appearance:   DefaultAppearance(),
	}
}

// softFail swallows malformed-value errors after logging them; store failures pass through.
func (s *Service) softFail(key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrMalformedValue) {
		s.log.Warn("stored value unreadable, using default", slog.String("key", key), slog.String("error", err.Error()))
		return nil
	}
	return err
}

// Load reads every key once, falling back to defaults for missing or malformed values.
func (s *Service) Load(ctx context.Context) (State, error) {
	st := DefaultState()
	var err error

	if st.Resolutions, err = storage.GetJSON(ctx, s.store, storage.KeyResolutions, st.Resolutions); s.softFail(storage.KeyResolutions, err) != nil {
		return st, err
	}
	if st.TargetDate, err = storage.GetString(ctx, s.store, storage.KeyTargetDate, ""); err != nil {
		return st, err
	}
	if st.TargetLabel, err = storage.GetString(ctx, s.store, storage.KeyTargetLabel, DefaultTargetLabel); err != nil {
		return st, err
	}
	if st.Transactions, err = storage.GetJSON(ctx, s.store, storage.KeyTransactions, st.Transactions); s.softFail(storage.KeyTransactions, err) != nil {
		return st, err
	}
	if st.Appearance, err = storage.GetJSON(ctx, s.store, storage.KeyAppearance, st.Appearance); s.softFail(storage.KeyAppearance, err) != nil {
		return st, err
	}
	st.Appearance = st.Appearance.Clamped()

	p := &st.Profile
	if p.Name, err = storage.GetString(ctx, s.store, storage.KeyOperatorName, DefaultOperatorName); err != nil {
		return st, err
	}
	if p.Description, err = storage.GetString(ctx, s.store, storage.KeyOperatorDesc, DefaultOperatorDesc); err != nil {
		return st, err
	}
	if p.WeightKg, err = storage.GetFloat(ctx, s.store, storage.KeyOperatorWeight, DefaultWeightKg); s.softFail(storage.KeyOperatorWeight, err) != nil {
		return st, err
	}
	if p.HeightCm, err = storage.GetFloat(ctx, s.store, storage.KeyOperatorHeight, DefaultHeightCm); s.softFail(storage.KeyOperatorHeight, err) != nil {
		return st, err
	}
	if p.Image, err = storage.GetString(ctx, s.store, storage.KeyOperatorImage, ""); err != nil {
		return st, err
	}
	if !validMetric(p.WeightKg) {
		p.WeightKg = DefaultWeightKg
	}
	if !validMetric(p.HeightCm) {
		p.HeightCm = DefaultHeightCm
	}

	return st, nil
}

// Dashboard holds the live panels built from a loaded State.
type Dashboard struct {
	Runtime     *Runtime
	Resolutions *Resolutions
	Countdown   *Countdown
	Ledger      *Ledger
	Profile     Profile
	Appearance  Appearance
}

// OpenDashboard loads state and builds every panel, evaluated at the current time.
func (s *Service) OpenDashboard(ctx context.Context) (*Dashboard, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	d := &Dashboard{
		Runtime:     NewRuntime(s.epoch),
		Resolutions: NewResolutions(st.Resolutions),
		Countdown:   NewCountdown(st.TargetDate, st.TargetLabel, s.loc),
		Ledger:      NewLedger(st.Transactions),
		Profile:     st.Profile,
		Appearance:  st.Appearance,
	}
	d.Runtime.Tick(now)
	d.Countdown.Tick(now)
	return d, nil
}
