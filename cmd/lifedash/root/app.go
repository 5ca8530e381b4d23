package root

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"lifedash/internal/config"
	"lifedash/internal/engine"
	"lifedash/internal/logging"
	"lifedash/internal/storage"
)

// app is everything a command needs once config, logging and storage are up.
type app struct {
	cfg config.Config
	svc *engine.Service
	log *slog.Logger
	fmt engine.Formatter
	cur engine.Formatter // money
}

func (a *app) money(d decimal.Decimal) string {
	return a.cur.Money(a.cfg.Currency, d)
}

func openDB(ctx context.Context, cfg config.Config, override string) (*sql.DB, func(), error) {
	if override == "" {
		override = cfg.DBPath
	}
	path, err := storage.ResolveDBPath(override)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openApp(ctx context.Context, flags *globalFlags) (*app, func(), error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	db, closeDB, err := openDB(ctx, cfg, flags.dbPath)
	if err != nil {
		return nil, nil, errors.Join(err, closeLog())
	}

	svc := engine.NewService(db, engine.Options{
		Epoch:     cfg.Epoch,
		BirthDate: cfg.BirthDate,
		Location:  cfg.Location,
		Logger:    logger,
	})
	cleanup := func() {
		closeDB()
		_ = closeLog()
	}
	logger.Debug("store opened", slog.String("locale", cfg.Locale), slog.String("timezone", cfg.Location.String()))
	return &app{
		cfg: cfg,
		svc: svc,
		log: logger,
		fmt: engine.NewFormatter(cfg.Locale),
		cur: engine.NewFormatter(cfg.MoneyLocale),
	}, cleanup, nil
}
