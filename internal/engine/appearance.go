package engine

import (
	"fmt"
	"math"
	"strings"
)

// Appearance holds the six self-rated scores, each 0-100.
type Appearance struct {
	Acne    int `json:"acne"`
	Skin    int `json:"skin"`
	Hair    int `json:"hair"`
	Body    int `json:"body"`
	Style   int `json:"style"`
	Posture int `json:"posture"`
}

// AppearanceKeys lists the score names in display order.
var AppearanceKeys = []string{"acne", "skin", "hair", "body", "style", "posture"}

func DefaultAppearance() Appearance {
	return Appearance{Acne: 50, Skin: 60, Hair: 70, Body: 65, Style: 55, Posture: 60}
}

func (a *Appearance) field(key string) (*int, error) {
	switch strings.TrimSpace(strings.ToLower(key)) {
	case "acne":
		return &a.Acne, nil
	case "skin":
		return &a.Skin, nil
	case "hair":
		return &a.Hair, nil
	case "body":
		return &a.Body, nil
	case "style":
		return &a.Style, nil
	case "posture":
		return &a.Posture, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScore, key)
	}
}

// Score returns a single score by name.
func (a Appearance) Score(key string) (int, error) {
	p, err := a.field(key)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// SetScore updates one score, clamped to [0,100].
func (a *Appearance) SetScore(key string, value int) error {
	p, err := a.field(key)
	if err != nil {
		return err
	}
	*p = clamp(value, 0, 100)
	return nil
}

// Clamped returns a copy with every score forced into [0,100].
func (a Appearance) Clamped() Appearance {
	for _, p := range []*int{&a.Acne, &a.Skin, &a.Hair, &a.Body, &a.Style, &a.Posture} {
		*p = clamp(*p, 0, 100)
	}
	return a
}

// Average is the mean of the six scores rounded half up.
func (a Appearance) Average() int {
	sum := a.Acne + a.Skin + a.Hair + a.Body + a.Style + a.Posture
	return int(math.Floor(float64(sum)/6 + 0.5))
}
