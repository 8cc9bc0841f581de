// Package inet provides constraints with matched generators for Internet
// identifiers: hostname labels, hostnames, email addresses and URLs. The
// grammar is deliberately RFC1123/RFC5322-lite: enough structure for
// realistic test data, no internationalized names.
package inet

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/sparkfund/uspec"
)

const (
	maxHostnameLen = 253
	maxLabelLen    = 64
)

// A label starts and ends alphanumeric; hyphens are allowed inside only.
var labelRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)

var (
	labelChars     = string(lo.LowerCaseLettersCharset) + string(lo.UpperCaseLettersCharset) + string(lo.NumbersCharset)
	labelBodyChars = labelChars + "-"
)

func pick(r *rand.Rand, pool string) byte {
	return pool[r.Intn(len(pool))]
}

func hostPartOK(s string) bool {
	return len(s) <= maxLabelLen && labelRe.MatchString(s)
}

func genHostPart(r *rand.Rand) string {
	return genSizedPart(r, maxLabelLen)
}

func genSizedPart(r *rand.Rand, maxLen int) string {
	n := 1 + r.Intn(maxLen)
	var b strings.Builder
	b.Grow(n)
	b.WriteByte(pick(r, labelChars))
	for i := 0; i < n-2; i++ {
		b.WriteByte(pick(r, labelBodyChars))
	}
	if n > 1 {
		b.WriteByte(pick(r, labelChars))
	}
	return b.String()
}

// HostPart is the constraint for a single dot-separated hostname segment:
// 1-64 characters, alphanumeric at both ends, internal hyphens allowed.
func HostPart() uspec.Constraint[string] {
	return uspec.New(hostPartOK, genHostPart)
}

// HostnameConfig parameterizes Hostname.
type HostnameConfig struct {
	// Domains restricts accepted hostnames to those ending with "." followed
	// by one of these suffixes, case-insensitively. A suffix may span
	// several labels ("co.uk"). Empty means unrestricted.
	Domains []string
	// MinDepth and MaxDepth bound the label count. Unset means unbounded
	// for validation; generation defaults to 2..4 labels.
	MinDepth mo.Option[int]
	MaxDepth mo.Option[int]
}

const (
	defaultGenMinDepth = 2
	defaultGenMaxDepth = 4
)

// Hostname builds a constraint over dot-joined host parts with the total
// length capped at 253 characters. With Domains configured, the generator
// picks a suffix uniformly and prepends however many labels the depth bounds
// still require.
func Hostname(cfg HostnameConfig) (uspec.Constraint[string], error) {
	minDepth, hasMin := cfg.MinDepth.Get()
	maxDepth, hasMax := cfg.MaxDepth.Get()
	if hasMin && minDepth < 1 {
		return uspec.Constraint[string]{}, fmt.Errorf("%w: minDepth must be at least 1, got %d", uspec.ErrConfiguration, minDepth)
	}
	if hasMax && maxDepth < 1 {
		return uspec.Constraint[string]{}, fmt.Errorf("%w: maxDepth must be at least 1, got %d", uspec.ErrConfiguration, maxDepth)
	}
	if hasMin && hasMax && maxDepth < minDepth {
		return uspec.Constraint[string]{}, fmt.Errorf("%w: maxDepth %d is smaller than minDepth %d", uspec.ErrConfiguration, maxDepth, minDepth)
	}
	if hasMin && 2*minDepth-1 > maxHostnameLen {
		return uspec.Constraint[string]{}, fmt.Errorf("%w: minDepth %d cannot fit in %d characters", uspec.ErrConfiguration, minDepth, maxHostnameLen)
	}
	domains := lo.Map(cfg.Domains, func(d string, _ int) string { return strings.ToLower(d) })
	for _, d := range domains {
		if !lo.EveryBy(strings.Split(d, "."), hostPartOK) {
			return uspec.Constraint[string]{}, fmt.Errorf("%w: domain suffix %q is not a valid label sequence", uspec.ErrConfiguration, d)
		}
		depth := strings.Count(d, ".") + 1
		if hasMax && depth+1 > maxDepth {
			return uspec.Constraint[string]{}, fmt.Errorf("%w: suffix %q already has %d labels, maxDepth %d leaves no room for a host label", uspec.ErrConfiguration, d, depth, maxDepth)
		}
		// One extra label and its dot must still fit under the length cap,
		// as must whatever minDepth demands on top of the suffix.
		need := max(1, lo.Ternary(hasMin, minDepth, 1)-depth)
		if 2*need+len(d) > maxHostnameLen {
			return uspec.Constraint[string]{}, fmt.Errorf("%w: suffix %q plus %d labels cannot fit in %d characters", uspec.ErrConfiguration, d, need, maxHostnameLen)
		}
	}

	pred := func(s string) bool {
		if len(s) == 0 || len(s) > maxHostnameLen {
			return false
		}
		parts := strings.Split(s, ".")
		// Empty parts (leading/trailing/double dots) fail the label check.
		if !lo.EveryBy(parts, hostPartOK) {
			return false
		}
		if hasMin && len(parts) < minDepth {
			return false
		}
		if hasMax && len(parts) > maxDepth {
			return false
		}
		if len(domains) > 0 {
			lower := strings.ToLower(s)
			return lo.SomeBy(domains, func(d string) bool {
				return strings.HasSuffix(lower, "."+d)
			})
		}
		return true
	}

	genMin := lo.Ternary(hasMin, minDepth, defaultGenMinDepth)
	genMax := lo.Ternary(hasMax, maxDepth, defaultGenMaxDepth)
	if genMax < genMin {
		genMax = genMin
	}

	var gen uspec.Gen[string]
	if len(domains) > 0 {
		gen = func(r *rand.Rand) string {
			for {
				suffix := domains[r.Intn(len(domains))]
				suffixDepth := strings.Count(suffix, ".") + 1
				// At least one label must precede the suffix; the depth
				// bounds apply net of the suffix's own labels.
				low := max(1, genMin-suffixDepth)
				high := max(low, genMax-suffixDepth)
				n := low + r.Intn(high-low+1)
				parts := labelRun(r, n, maxHostnameLen-len(suffix)-n)
				name := strings.Join(append(parts, suffix), ".")
				if len(name) <= maxHostnameLen {
					return name
				}
			}
		}
	} else {
		gen = func(r *rand.Rand) string {
			for {
				n := genMin + r.Intn(genMax-genMin+1)
				name := strings.Join(labelRun(r, n, maxHostnameLen-(n-1)), ".")
				if len(name) <= maxHostnameLen {
					return name
				}
			}
		}
	}
	return uspec.New(pred, gen), nil
}

// labelRun draws n labels whose lengths share the given character budget, so
// the joined hostname stays under the overall cap.
func labelRun(r *rand.Rand, n, budget int) []string {
	per := min(max(budget/n, 1), maxLabelLen)
	return lo.Times(n, func(int) string { return genSizedPart(r, per) })
}

// FullyQualified is Hostname restricted to the reference TLD set with at
// least two labels.
func FullyQualified() uspec.Constraint[string] {
	return lo.Must(Hostname(HostnameConfig{Domains: TLDs(), MinDepth: mo.Some(2)}))
}

// commonAliases are single-label hostnames accepted alongside fully
// qualified names.
var commonAliases = []string{"localhost"}

// Common accepts either a fully qualified hostname or one of a small literal
// alias set; the generator picks one branch uniformly.
func Common() uspec.Constraint[string] {
	alias := uspec.New(
		func(s string) bool { return lo.Contains(commonAliases, strings.ToLower(s)) },
		func(r *rand.Rand) string { return commonAliases[r.Intn(len(commonAliases))] },
	)
	return uspec.Or(FullyQualified(), alias)
}
