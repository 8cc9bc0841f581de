// Package charseq defines constraints over ordered character sequences and
// the adapter that lifts them into string constraints. Conform and Unform
// round-trip: joining a conformed sequence reproduces the original string.
package charseq

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/sparkfund/uspec"
)

// defaultMaxCount caps generated sequence length when no upper bound is
// configured.
const defaultMaxCount = 32

// defaultChars is the generation pool used when Chars is not configured.
var defaultChars = []rune(string(lo.LowerCaseLettersCharset) + string(lo.UpperCaseLettersCharset) + string(lo.NumbersCharset))

// Config parameterizes a character-sequence constraint. Count pins the
// exact length and is mutually exclusive with MinCount/MaxCount. Chars, when
// set, is the allowed character set; unset leaves membership unrestricted
// and generation draws from letters and digits.
type Config struct {
	Count    mo.Option[int]
	MinCount mo.Option[int]
	MaxCount mo.Option[int]
	Chars    []rune
}

// New builds a constraint over rune sequences.
func New(cfg Config) (uspec.Constraint[[]rune], error) {
	count, hasCount := cfg.Count.Get()
	minCount, hasMin := cfg.MinCount.Get()
	maxCount, hasMax := cfg.MaxCount.Get()
	if hasCount && (hasMin || hasMax) {
		return uspec.Constraint[[]rune]{}, fmt.Errorf("%w: count and min/max count are mutually exclusive", uspec.ErrConfiguration)
	}
	for name, c := range map[string]mo.Option[int]{"count": cfg.Count, "minCount": cfg.MinCount, "maxCount": cfg.MaxCount} {
		if v, ok := c.Get(); ok && v < 0 {
			return uspec.Constraint[[]rune]{}, fmt.Errorf("%w: %s must be non-negative, got %d", uspec.ErrConfiguration, name, v)
		}
	}
	if hasMin && hasMax && maxCount < minCount {
		return uspec.Constraint[[]rune]{}, fmt.Errorf("%w: maxCount %d is smaller than minCount %d", uspec.ErrConfiguration, maxCount, minCount)
	}

	allowed := lo.SliceToMap(cfg.Chars, func(c rune) (rune, struct{}) { return c, struct{}{} })
	pred := func(v []rune) bool {
		n := len(v)
		if hasCount && n != count {
			return false
		}
		if hasMin && n < minCount {
			return false
		}
		if hasMax && n > maxCount {
			return false
		}
		if len(allowed) > 0 {
			return lo.EveryBy(v, func(c rune) bool {
				_, ok := allowed[c]
				return ok
			})
		}
		return true
	}

	pool := lo.Ternary(len(cfg.Chars) > 0, cfg.Chars, defaultChars)
	genMin := lo.Ternary(hasCount, count, minCount)
	genMax := lo.Ternary(hasCount, count, lo.Ternary(hasMax, maxCount, max(minCount, defaultMaxCount)))
	gen := func(r *rand.Rand) []rune {
		n := genMin + r.Intn(genMax-genMin+1)
		return lo.Times(n, func(int) rune { return pool[r.Intn(len(pool))] })
	}
	return uspec.New(pred, gen), nil
}

// AsString lifts a rune-sequence constraint into a string constraint: the
// predicate converts and delegates, the generator delegates and joins.
func AsString(seq uspec.Constraint[[]rune]) uspec.Constraint[string] {
	return uspec.New(
		func(s string) bool { return seq.Conforms([]rune(s)) },
		func(r *rand.Rand) string { return string(seq.Generate(r)) },
	)
}

// Conform checks s against the sequence constraint and returns its character
// sequence on success.
func Conform(seq uspec.Constraint[[]rune], s string) mo.Result[[]rune] {
	return seq.Conform([]rune(s))
}

// Unform joins a conformed sequence back into the string it came from.
func Unform(v []rune) string {
	return string(v)
}

// ConformEach would conform a string element by element, producing a
// per-character result sequence. Reverse mapping of partial conformance
// results is not supported; callers get an explicit signal instead of a
// plausible wrong answer.
func ConformEach(uspec.Constraint[[]rune], string) ([]mo.Result[rune], error) {
	return nil, fmt.Errorf("%w: per-element conformance has no reverse mapping yet", uspec.ErrNotImplemented)
}
