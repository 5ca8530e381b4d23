package engine

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultOperatorName = "OPERATOR"
	DefaultOperatorDesc = "SYSTEM IN PROGRESS"
	DefaultWeightKg     = 70.0
	DefaultHeightCm     = 175.0
)

// DefaultBirthDate is the birth date age is measured from.
var DefaultBirthDate = time.Date(2004, time.January, 1, 0, 0, 0, 0, time.UTC)

type Profile struct {
	Name        string
	Description string
	WeightKg    float64
	HeightCm    float64
	Image       string // data URI, empty when unset
}

func DefaultProfile() Profile {
	return Profile{
		Name:        DefaultOperatorName,
		Description: DefaultOperatorDesc,
		WeightKg:    DefaultWeightKg,
		HeightCm:    DefaultHeightCm,
	}
}

func validMetric(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// SetWeight rejects NaN, infinities and non-positive values.
func (p *Profile) SetWeight(kg float64) error {
	if !validMetric(kg) {
		return ErrInvalidMetric
	}
	p.WeightKg = kg
	return nil
}

func (p *Profile) SetHeight(cm float64) error {
	if !validMetric(cm) {
		return ErrInvalidMetric
	}
	p.HeightCm = cm
	return nil
}

func (p *Profile) AdjustWeight(delta float64) error {
	return p.SetWeight(p.WeightKg + delta)
}

func (p *Profile) AdjustHeight(delta float64) error {
	return p.SetHeight(p.HeightCm + delta)
}

// SetName trims input; blank names fall back to the default.
func (p *Profile) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultOperatorName
	}
	p.Name = name
}

func (p *Profile) SetDescription(desc string) {
	p.Description = strings.TrimSpace(desc)
}

// FormatMetric renders a body metric without trailing zeros.
func FormatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BMI is weight over height in metres squared; 0 when height is unknown.
func (p Profile) BMI() float64 {
	if p.HeightCm <= 0 {
		return 0
	}
	m := p.HeightCm / 100
	return p.WeightKg / (m * m)
}

// Age returns completed calendar years between birth and now.
func Age(birth, now time.Time) int {
	if now.Before(birth) {
		return 0
	}
	now = now.In(birth.Location())
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
