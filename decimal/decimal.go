// Package decimal provides a fixed-point decimal constraint: a predicate
// over exact decimals bounded by precision, scale, minimum and maximum, and
// a generator guaranteed to emit only values that predicate accepts.
//
// Precision is the count of significant (unscaled) digits, scale the count
// of digits right of the decimal point. Arithmetic is exact throughout via
// shopspring/decimal; nothing here goes through float64 except the uniform
// draw itself.
package decimal

import (
	"fmt"
	"math/rand"

	"github.com/samber/mo"
	sd "github.com/shopspring/decimal"

	"github.com/sparkfund/uspec"
)

// defaultBound caps the uniform draw when neither bounds nor a precision to
// derive them from are configured.
var defaultBound = sd.New(1, 9)

// Config is the full set of optional decimal constraint parameters.
//
// Invariants checked at construction:
//   - Precision, if set, is positive.
//   - Scale, if set, is non-negative.
//   - Precision >= Scale when both are set.
//   - Max >= Min when both are set.
//   - Min and Max each satisfy the precision/scale shape they bound.
type Config struct {
	Precision mo.Option[int32]
	Scale     mo.Option[int32]
	Min       mo.Option[sd.Decimal]
	Max       mo.Option[sd.Decimal]
}

// New builds the constraint over exact decimal values. An invalid
// configuration fails here with uspec.ErrConfiguration, never later at
// predicate or generator use.
func New(cfg Config) (uspec.Constraint[sd.Decimal], error) {
	if err := cfg.validate(); err != nil {
		return uspec.Constraint[sd.Decimal]{}, err
	}
	return uspec.New(cfg.predicate(), cfg.generator()), nil
}

// Strings builds the same constraint over decimal string notation. The
// predicate parses its input; anything unparseable is simply non-conforming.
// The generator renders values in plain (non-scientific) notation.
func Strings(cfg Config) (uspec.Constraint[string], error) {
	c, err := New(cfg)
	if err != nil {
		return uspec.Constraint[string]{}, err
	}
	pred := func(s string) bool {
		v, err := sd.NewFromString(s)
		if err != nil {
			return false
		}
		return c.Conforms(v)
	}
	gen := func(r *rand.Rand) string {
		return c.Generate(r).String()
	}
	return uspec.New(pred, gen), nil
}

func (cfg Config) validate() error {
	p, hasPrec := cfg.Precision.Get()
	if hasPrec && p <= 0 {
		return fmt.Errorf("%w: precision must be positive, got %d", uspec.ErrConfiguration, p)
	}
	s, hasScale := cfg.Scale.Get()
	if hasScale && s < 0 {
		return fmt.Errorf("%w: scale must be non-negative, got %d", uspec.ErrConfiguration, s)
	}
	if hasPrec && hasScale && p < s {
		return fmt.Errorf("%w: precision %d is smaller than scale %d", uspec.ErrConfiguration, p, s)
	}
	min, hasMin := cfg.Min.Get()
	max, hasMax := cfg.Max.Get()
	if hasMin && hasMax && max.Cmp(min) < 0 {
		return fmt.Errorf("%w: max %s is smaller than min %s", uspec.ErrConfiguration, max, min)
	}
	// A bound that violates the shape it is supposed to bound is a
	// configuration error, not a value error.
	if hasMin && !cfg.shape(min) {
		return fmt.Errorf("%w: min %s violates the configured precision/scale", uspec.ErrConfiguration, min)
	}
	if hasMax && !cfg.shape(max) {
		return fmt.Errorf("%w: max %s violates the configured precision/scale", uspec.ErrConfiguration, max)
	}
	return nil
}

// shape checks the precision/scale rules alone, ignoring min/max.
func (cfg Config) shape(v sd.Decimal) bool {
	if p, ok := cfg.Precision.Get(); ok && int32(v.NumDigits()) > p {
		return false
	}
	if s, ok := cfg.Scale.Get(); ok {
		// Scale bounds fractional digits only. A negative scale (trailing
		// zeros absorbed into the exponent, as in 1E+2) always fails, even
		// when the digit count is small.
		sc := -v.Exponent()
		if sc < 0 || sc > s {
			return false
		}
	}
	return true
}

func (cfg Config) predicate() uspec.Predicate[sd.Decimal] {
	return func(v sd.Decimal) bool {
		if !cfg.shape(v) {
			return false
		}
		if min, ok := cfg.Min.Get(); ok && v.Cmp(min) < 0 {
			return false
		}
		if max, ok := cfg.Max.Get(); ok && v.Cmp(max) > 0 {
			return false
		}
		return true
	}
}

func (cfg Config) generator() uspec.Gen[sd.Decimal] {
	min, max := cfg.bounds()
	span := max.Sub(min)
	scale, hasScale := cfg.Scale.Get()
	prec, hasPrec := cfg.Precision.Get()
	return func(r *rand.Rand) sd.Decimal {
		v := min.Add(span.Mul(sd.NewFromFloat(r.Float64())))
		// Scale rounding must come first so the later significant-digit
		// rounding cannot reintroduce excess fractional digits.
		if hasScale {
			v = v.Round(scale)
		}
		if hasPrec {
			v = roundSignificant(v, prec)
		}
		return v
	}
}

// bounds derives the effective generator range. Explicit min/max win; absent
// those, a configured precision bounds the draw at the largest magnitude
// whose unscaled digit count still fits. The limit accounts for scale too:
// with precision p and scale s the extreme representable value is
// 10^(p-s) - 10^(-s), not 10^p - 1.
func (cfg Config) bounds() (sd.Decimal, sd.Decimal) {
	min, hasMin := cfg.Min.Get()
	max, hasMax := cfg.Max.Get()
	if p, ok := cfg.Precision.Get(); ok {
		s := cfg.Scale.OrElse(0)
		limit := sd.New(1, p-s).Sub(sd.New(1, -s))
		// An explicit bound can sit beyond the derived limit and still fit
		// the precision (5E+3 has one significant digit); the derived
		// fallback must not invert the draw interval around it.
		if !hasMin {
			min = sd.Min(limit.Neg(), max)
		}
		if !hasMax {
			max = sd.Max(limit, min)
		}
		return min, max
	}
	if !hasMin {
		min = defaultBound.Neg()
	}
	if !hasMax {
		max = defaultBound
	}
	// A lone explicit bound can sit outside the default range; collapse
	// rather than invert the draw interval.
	if max.Cmp(min) < 0 {
		if hasMin {
			max = min
		} else {
			min = max
		}
	}
	return min, max
}

// roundSignificant rounds half-up to at most p significant digits. A round
// can carry into an extra digit (99.96 -> 100.0), so it re-applies until the
// digit count fits; the second pass only ever strips the trailing zero the
// carry introduced.
func roundSignificant(v sd.Decimal, p int32) sd.Decimal {
	for n := int32(v.NumDigits()); n > p; n = int32(v.NumDigits()) {
		// Digits left of the decimal point; negative for values below 0.1.
		intDigits := n + v.Exponent()
		v = v.Round(p - intDigits)
	}
	return v
}
