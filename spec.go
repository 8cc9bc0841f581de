// Package uspec pairs parameterized value validators with matched random
// generators. Every constraint is an immutable (predicate, generator) pair
// built from a typed configuration record; the generator only ever emits
// values its own predicate accepts, which makes any constraint directly
// usable as a property-based test data source.
package uspec

import (
	"fmt"
	"iter"
	"math/rand"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Predicate reports whether a value conforms to a constraint.
type Predicate[T any] func(v T) bool

// Gen draws one value from the caller-supplied randomness source.
type Gen[T any] func(r *rand.Rand) T

// Constraint pairs a predicate with a generator matched to it: every value
// the generator emits satisfies the predicate. A Constraint has no mutable
// state and is safe for concurrent use by any number of goroutines.
type Constraint[T any] struct {
	pred Predicate[T]
	gen  Gen[T]
}

// New builds a Constraint from a predicate and its matched generator.
// Callers are responsible for keeping the two in lock-step; Check exists to
// verify that they are.
func New[T any](pred Predicate[T], gen Gen[T]) Constraint[T] {
	lo.Assertf(pred != nil, "uspec: nil predicate")
	lo.Assertf(gen != nil, "uspec: nil generator")
	return Constraint[T]{pred: pred, gen: gen}
}

// Conforms reports whether v satisfies the constraint's predicate.
func (c Constraint[T]) Conforms(v T) bool {
	return c.pred(v)
}

// Conform returns Ok(v) when v satisfies the predicate, otherwise an error
// wrapping ErrInvalid. Predicate evaluation never raises; malformed input is
// simply non-conforming.
func (c Constraint[T]) Conform(v T) mo.Result[T] {
	return lo.Ternary(c.pred(v), mo.Ok(v), mo.Err[T](fmt.Errorf("%w: %v", ErrInvalid, v)))
}

// Generate draws a single conforming value from r.
func (c Constraint[T]) Generate(r *rand.Rand) T {
	return c.gen(r)
}

// Stream returns an infinite lazy sequence of conforming values. Each call
// yields an independent stream; the same seed reproduces the same sequence.
func (c Constraint[T]) Stream(seed int64) iter.Seq[T] {
	return func(yield func(T) bool) {
		r := rand.New(rand.NewSource(seed))
		for yield(c.gen(r)) {
		}
	}
}

// Check draws runs values from the generator and verifies each one against
// the predicate. It returns nil when the pair is in lock-step, or an error
// identifying the seed and draw index of the first non-conforming value.
func (c Constraint[T]) Check(seed int64, runs int) error {
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < runs; i++ {
		if v := c.gen(r); !c.pred(v) {
			return fmt.Errorf("%w: generated value %v rejected by its own predicate (seed=%d draw=%d)", ErrInvalid, v, seed, i)
		}
	}
	return nil
}

// Or combines constraints into a disjunction: the predicate accepts a value
// when any branch does, and the generator picks a branch uniformly before
// drawing from it.
func Or[T any](branches ...Constraint[T]) Constraint[T] {
	lo.Assertf(len(branches) > 0, "uspec: Or requires at least one branch")
	return Constraint[T]{
		pred: func(v T) bool {
			return lo.SomeBy(branches, func(b Constraint[T]) bool { return b.pred(v) })
		},
		gen: func(r *rand.Rand) T {
			return branches[r.Intn(len(branches))].gen(r)
		},
	}
}
