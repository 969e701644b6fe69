package render

import (
	"image/color"
	"strings"
)

// Effect is a decorative pass drawn on top of the base trail
type Effect uint16

const (
	EffectElectric Effect = iota
	EffectWaves
	EffectFire
	EffectWater
)

// DefaultEffect is used whenever configured effect is unknown
const DefaultEffect = EffectElectric

func (effect Effect) String() string {
	switch effect {
	case EffectElectric:
		return "electric"
	case EffectWaves:
		return "waves"
	case EffectFire:
		return "fire"
	case EffectWater:
		return "water"
	default:
		return "unknown"
	}
}

// ParseEffect maps effect name onto Effect. Unknown names fall back to DefaultEffect.
func ParseEffect(value string) Effect {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "electric", "electricity":
		return EffectElectric
	case "waves", "wave":
		return EffectWaves
	case "fire":
		return EffectFire
	case "water":
		return EffectWater
	default:
		return DefaultEffect
	}
}

// Style is caller-selected look of the trail
type Style struct {
	Color  color.NRGBA
	Effect Effect
	// BaseWidth is width of the primary trail stroke
	BaseWidth float64
	// InnerWidth is width of the contrasting inner stroke
	InnerWidth float64
	// Glow is simulated blur radius around the primary stroke
	Glow float64
}

// DefaultStyle returns green electric trail
func DefaultStyle() Style {
	return NewStyle(FormatTraceColor(DefaultTraceColor), DefaultEffect.String())
}

// NewStyle builds style from raw configuration values, falling back to defaults for malformed ones
func NewStyle(traceColor, traceEffect string) Style {
	return Style{
		Color:      ParseTraceColor(traceColor),
		Effect:     ParseEffect(traceEffect),
		BaseWidth:  9,
		InnerWidth: 3,
		Glow:       20,
	}
}
