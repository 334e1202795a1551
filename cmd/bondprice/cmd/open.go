package cmd

import (
	"fmt"

	"github.com/rustyeddy/bondprice/config"
	"github.com/rustyeddy/bondprice/editor"
	"github.com/rustyeddy/bondprice/journal"
	"github.com/rustyeddy/bondprice/market"
	"github.com/rustyeddy/bondprice/session"
	"github.com/rustyeddy/bondprice/valuation"
	"go.uber.org/zap"
)

// openSession builds an editing session for the bond and curve in cfg.
func openSession(cfg *config.Config, j journal.Journal, logger *zap.Logger, opts ...session.Option) (*session.Session, error) {
	bond, err := cfg.BondStatic()
	if err != nil {
		return nil, err
	}
	curve, err := cfg.BuildCurve()
	if err != nil {
		return nil, err
	}

	ctrl, err := editor.New(bond, editor.Deps{
		Curves:  market.NewStaticCurve(curve),
		Builder: market.Builder{},
		Engine:  valuation.NewReference(cfg.EngineParams()),
	}, cfg.InitialPrice, editor.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create editor: %w", err)
	}

	opts = append([]session.Option{session.WithLogger(logger)}, opts...)
	return session.New(ctrl, j, opts...), nil
}

// loadSession reads the config at cfgPath and opens a session on it. The
// returned func closes the journal and flushes the logger.
func loadSession(journaled bool, opts ...session.Option) (*session.Session, func(), error) {
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return startSession(cfg, journaled, opts...)
}

func startSession(cfg *config.Config, journaled bool, opts ...session.Option) (*session.Session, func(), error) {
	logger, err := cfg.Logging.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	var j journal.Journal = journal.Nop{}
	if journaled {
		j, err = journal.Open(cfg.JournalOptions())
		if err != nil {
			_ = logger.Sync()
			return nil, nil, fmt.Errorf("create journal: %w", err)
		}
	}

	s, err := openSession(cfg, j, logger, opts...)
	if err != nil {
		_ = j.Close()
		_ = logger.Sync()
		return nil, nil, err
	}

	cleanup := func() {
		if err := s.Close(); err != nil {
			logger.Warn("close journal", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return s, cleanup, nil
}
