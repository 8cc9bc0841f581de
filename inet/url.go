package inet

import (
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/tidwall/match"

	"github.com/sparkfund/uspec"
)

// RFC3986 scheme shape; enforced on configured schemes so generated URLs
// always parse back.
var schemeRe = regexp.MustCompile(`^[a-z][a-z0-9+.-]*$`)

var defaultSchemes = []string{"http", "https"}

// URLConfig parameterizes URL. Empty Schemes means the default {http,
// https}; Hosts entries may be tidwall/match wildcard patterns for
// validation, with at least one literal for generation.
type URLConfig struct {
	Schemes []string
	Hosts   []string
}

// URL builds a constraint over absolute URLs. The predicate parses its
// input; malformed strings are simply non-conforming. The generator emits
// scheme://host/ with the host drawn from the configured set or, absent one,
// from the fully qualified hostname generator.
func URL(cfg URLConfig) (uspec.Constraint[string], error) {
	schemes := lo.Map(cfg.Schemes, func(s string, _ int) string { return strings.ToLower(s) })
	for _, s := range schemes {
		if !schemeRe.MatchString(s) {
			return uspec.Constraint[string]{}, fmt.Errorf("%w: %q is not a valid URL scheme", uspec.ErrConfiguration, s)
		}
	}
	restrictScheme := len(schemes) > 0
	if len(schemes) == 0 {
		schemes = defaultSchemes
	}

	var hostOK uspec.Predicate[string]
	var genHost uspec.Gen[string]
	if len(cfg.Hosts) > 0 {
		hosts := lo.Map(cfg.Hosts, func(h string, _ int) string { return strings.ToLower(h) })
		literals := lo.Filter(hosts, func(h string, _ int) bool { return !match.IsPattern(h) })
		if len(literals) == 0 {
			return uspec.Constraint[string]{}, fmt.Errorf("%w: host set contains only wildcard patterns, nothing to generate from", uspec.ErrConfiguration)
		}
		// Ports and paths belong to the URL, not the host set.
		if bad, found := lo.Find(hosts, func(h string) bool { return strings.ContainsAny(h, ":/") }); found {
			return uspec.Constraint[string]{}, fmt.Errorf("%w: host %q must be a bare hostname", uspec.ErrConfiguration, bad)
		}
		hostOK = func(h string) bool {
			lower := strings.ToLower(h)
			return lo.SomeBy(hosts, func(pat string) bool { return match.Match(lower, pat) })
		}
		genHost = func(r *rand.Rand) string { return literals[r.Intn(len(literals))] }
	} else {
		hostOK = func(h string) bool { return h != "" }
		fq := FullyQualified()
		genHost = fq.Generate
	}

	pred := func(s string) bool {
		rs := mo.TupleToResult[*url.URL](url.Parse(s))
		if rs.IsError() {
			return false
		}
		u := rs.MustGet()
		if u.Scheme == "" || u.Host == "" {
			return false
		}
		if restrictScheme && !lo.Contains(schemes, strings.ToLower(u.Scheme)) {
			return false
		}
		return hostOK(u.Hostname())
	}
	gen := func(r *rand.Rand) string {
		return schemes[r.Intn(len(schemes))] + "://" + genHost(r) + "/"
	}
	return uspec.New(pred, gen), nil
}
