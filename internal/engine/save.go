package engine

import (
	"context"
	"fmt"
	"log/slog"

	"lifedash/internal/storage"
)

// Each panel writes only its own keys.

func (s *Service) SaveResolutions(ctx context.Context, r *Resolutions) error {
	if err := storage.SetJSON(ctx, s.store, storage.KeyResolutions, r.Items()); err != nil {
		return fmt.Errorf("save resolutions: %w", err)
	}
	return nil
}

// SaveTarget writes timestamp and label together.
func (s *Service) SaveTarget(ctx context.Context, c *Countdown) error {
	err := s.store.SetMany(ctx, map[string]string{
		storage.KeyTargetDate:  c.Timestamp,
		storage.KeyTargetLabel: c.Label,
	})
	if err != nil {
		return fmt.Errorf("save target: %w", err)
	}
	return nil
}

// SaveLedger writes the transaction list and refreshes the balance mirror.
func (s *Service) SaveLedger(ctx context.Context, l *Ledger) error {
	enc, err := storage.EncodeJSON(l.Transactions())
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	err = s.store.SetMany(ctx, map[string]string{
		storage.KeyTransactions: enc,
		storage.KeyBalance:      l.Balance().String(),
	})
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// SaveProfile writes the profile scalars. The image key is only written when set.
func (s *Service) SaveProfile(ctx context.Context, p Profile) error {
	values := map[string]string{
		storage.KeyOperatorName:   p.Name,
		storage.KeyOperatorDesc:   p.Description,
		storage.KeyOperatorWeight: storage.FormatFloat(p.WeightKg),
		storage.KeyOperatorHeight: storage.FormatFloat(p.HeightCm),
	}
	if p.Image != "" {
		values[storage.KeyOperatorImage] = p.Image
	}
	if err := s.store.SetMany(ctx, values); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Service) SaveAppearance(ctx context.Context, a Appearance) error {
	if err := storage.SetJSON(ctx, s.store, storage.KeyAppearance, a); err != nil {
		return fmt.Errorf("save appearance: %w", err)
	}
	return nil
}

func (s *Service) logSaved(panel string) {
	s.log.Debug("panel saved", slog.String("panel", panel))
}
