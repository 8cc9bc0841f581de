package inet

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/tidwall/match"

	"github.com/sparkfund/uspec"
)

const maxLocalLen = 64

// RFC5322-lite: the unquoted local-part atom characters, plus the dot that
// may join atoms but not lead, trail or repeat.
var (
	localNoDotChars = labelChars + "!#$%&'*+-/=?^_`{|}~"
	localChars      = localNoDotChars + "."
)

func localPartOK(s string) bool {
	if len(s) < 1 || len(s) > maxLocalLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(localChars, rune(s[i])) {
			return false
		}
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	return !strings.Contains(s, "..")
}

func genLocalPart(r *rand.Rand) string {
	for {
		n := 1 + r.Intn(maxLocalLen)
		b := make([]byte, n)
		// Dot-free draws at the two boundary positions keep the leading and
		// trailing characters legal; a rejected double dot just redraws.
		b[0] = pick(r, localNoDotChars)
		for i := 1; i < n-1; i++ {
			b[i] = pick(r, localChars)
		}
		if n > 1 {
			b[n-1] = pick(r, localNoDotChars)
		}
		s := string(b)
		if !strings.Contains(s, "..") {
			return s
		}
	}
}

// LocalEmailPart is the constraint for the portion of an email address
// before the @.
func LocalEmailPart() uspec.Constraint[string] {
	return uspec.New(localPartOK, genLocalPart)
}

// EmailConfig parameterizes Email. At most one of Hosts and Domains may be
// set: Hosts pins the domain part to a literal set (entries may be
// tidwall/match wildcard patterns for validation), Domains restricts it by
// domain suffix.
type EmailConfig struct {
	Hosts   []string
	Domains []string
}

// Email builds the constraint for addresses of the form local@host. The
// generator draws the local part and the host independently and joins them.
func Email(cfg EmailConfig) (uspec.Constraint[string], error) {
	if len(cfg.Hosts) > 0 && len(cfg.Domains) > 0 {
		return uspec.Constraint[string]{}, fmt.Errorf("%w: hosts and domains restrictions are mutually exclusive", uspec.ErrConfiguration)
	}

	var hostOK uspec.Predicate[string]
	var genHost uspec.Gen[string]
	if len(cfg.Hosts) > 0 {
		hosts := lo.Map(cfg.Hosts, func(h string, _ int) string { return strings.ToLower(h) })
		// Wildcard entries can validate but not generate; at least one
		// literal host is needed to keep the generator sound.
		literals := lo.Filter(hosts, func(h string, _ int) bool { return !match.IsPattern(h) })
		if len(literals) == 0 {
			return uspec.Constraint[string]{}, fmt.Errorf("%w: host set contains only wildcard patterns, nothing to generate from", uspec.ErrConfiguration)
		}
		hostOK = func(h string) bool {
			lower := strings.ToLower(h)
			return lo.SomeBy(hosts, func(pat string) bool { return match.Match(lower, pat) })
		}
		genHost = func(r *rand.Rand) string { return literals[r.Intn(len(literals))] }
	} else {
		// Two labels minimum: single-label hosts (user@example) are only
		// routable locally, so addresses always carry a dotted domain.
		hostname, err := Hostname(HostnameConfig{Domains: cfg.Domains, MinDepth: mo.Some(2)})
		if err != nil {
			return uspec.Constraint[string]{}, err
		}
		hostOK = hostname.Conforms
		genHost = hostname.Generate
	}

	pred := func(s string) bool {
		if strings.Count(s, "@") != 1 {
			return false
		}
		local, host, _ := strings.Cut(s, "@")
		return localPartOK(local) && hostOK(host)
	}
	gen := func(r *rand.Rand) string {
		return genLocalPart(r) + "@" + genHost(r)
	}
	return uspec.New(pred, gen), nil
}
