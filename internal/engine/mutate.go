package engine

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// One-shot mutations: load the owning panel, change it, persist it.

func (s *Service) resolutions(ctx context.Context) (*Resolutions, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewResolutions(st.Resolutions), nil
}

// SetResolutionProgress updates the record at ref (1-based position or id).
func (s *Service) SetResolutionProgress(ctx context.Context, ref string, value int) (Resolution, error) {
	r, err := s.resolutions(ctx)
	if err != nil {
		return Resolution{}, err
	}
	i, err := r.Resolve(ref)
	if err != nil {
		return Resolution{}, err
	}
	if err := r.SetProgress(i, value); err != nil {
		return Resolution{}, err
	}
	if err := s.SaveResolutions(ctx, r); err != nil {
		return Resolution{}, err
	}
	s.logSaved("resolutions")
	return r.Items()[i], nil
}

func (s *Service) SetResolutionStars(ctx context.Context, ref string, stars int) (Resolution, error) {
	r, err := s.resolutions(ctx)
	if err != nil {
		return Resolution{}, err
	}
	i, err := r.Resolve(ref)
	if err != nil {
		return Resolution{}, err
	}
	if err := r.SetStars(i, stars); err != nil {
		return Resolution{}, err
	}
	if err := s.SaveResolutions(ctx, r); err != nil {
		return Resolution{}, err
	}
	s.logSaved("resolutions")
	return r.Items()[i], nil
}

func (s *Service) AddResolution(ctx context.Context, in Resolution) (Resolution, error) {
	r, err := s.resolutions(ctx)
	if err != nil {
		return Resolution{}, err
	}
	added, err := r.Add(in)
	if err != nil {
		return Resolution{}, err
	}
	if err := s.SaveResolutions(ctx, r); err != nil {
		return Resolution{}, err
	}
	s.logSaved("resolutions")
	return added, nil
}

func (s *Service) RemoveResolution(ctx context.Context, ref string) (Resolution, error) {
	r, err := s.resolutions(ctx)
	if err != nil {
		return Resolution{}, err
	}
	i, err := r.Resolve(ref)
	if err != nil {
		return Resolution{}, err
	}
	removed := r.Items()[i]
	if err := r.Remove(removed.ID); err != nil {
		return Resolution{}, err
	}
	if err := s.SaveResolutions(ctx, r); err != nil {
		return Resolution{}, err
	}
	s.logSaved("resolutions")
	return removed, nil
}

// SetTarget replaces the countdown target (empty clears it) and optionally its label.
func (s *Service) SetTarget(ctx context.Context, raw string, label *string) (*Countdown, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	c := NewCountdown(st.TargetDate, st.TargetLabel, s.loc)
	if err := c.SetTarget(raw, s.Now()); err != nil {
		return nil, err
	}
	if label != nil {
		c.SetLabel(*label)
	}
	if err := s.SaveTarget(ctx, c); err != nil {
		return nil, err
	}
	s.logSaved("target")
	return c, nil
}

func (s *Service) SetTargetLabel(ctx context.Context, label string) (*Countdown, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	c := NewCountdown(st.TargetDate, label, s.loc)
	c.Tick(s.Now())
	if err := s.SaveTarget(ctx, c); err != nil {
		return nil, err
	}
	s.logSaved("target")
	return c, nil
}

// AddTransaction appends to the ledger and returns the new balance.
func (s *Service) AddTransaction(ctx context.Context, rawAmount string, typ TxType, cat Category) (Transaction, decimal.Decimal, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return Transaction{}, decimal.Zero, err
	}
	l := NewLedger(st.Transactions)
	tx, err := l.Add(rawAmount, typ, cat, s.now())
	if err != nil {
		return Transaction{}, decimal.Zero, err
	}
	if err := s.SaveLedger(ctx, l); err != nil {
		return Transaction{}, decimal.Zero, err
	}
	s.logSaved("ledger")
	return tx, l.Balance(), nil
}

// ProfileUpdate carries optional profile changes; nil fields are left alone.
type ProfileUpdate struct {
	Name        *string
	Description *string
	WeightKg    *float64
	HeightCm    *float64
}

func (s *Service) UpdateProfile(ctx context.Context, in ProfileUpdate) (Profile, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return Profile{}, err
	}
	p := st.Profile
	if in.Name != nil {
		p.SetName(*in.Name)
	}
	if in.Description != nil {
		p.SetDescription(*in.Description)
	}
	if in.WeightKg != nil {
		if err := p.SetWeight(*in.WeightKg); err != nil {
			return Profile{}, err
		}
	}
	if in.HeightCm != nil {
		if err := p.SetHeight(*in.HeightCm); err != nil {
			return Profile{}, err
		}
	}
	if err := s.SaveProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	s.logSaved("profile")
	return p, nil
}

// SetProfileImage loads the file at path. On failure the stored image is untouched.
func (s *Service) SetProfileImage(ctx context.Context, path string) (Profile, error) {
	uri, err := LoadImageDataURI(strings.TrimSpace(path))
	if err != nil {
		return Profile{}, err
	}
	st, err := s.Load(ctx)
	if err != nil {
		return Profile{}, err
	}
	p := st.Profile
	p.Image = uri
	if err := s.SaveProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	s.logSaved("profile")
	return p, nil
}

func (s *Service) SetAppearanceScore(ctx context.Context, key string, value int) (Appearance, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return Appearance{}, err
	}
	a := st.Appearance
	if err := a.SetScore(key, value); err != nil {
		return Appearance{}, err
	}
	if err := s.SaveAppearance(ctx, a); err != nil {
		return Appearance{}, err
	}
	s.logSaved("appearance")
	return a, nil
}
