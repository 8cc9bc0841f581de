package inet

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Reference top-level-domain data, one domain per line with an ignorable
// header line, as published by the registry.
//
//go:embed tlds.txt
var tldData string

var (
	tldOnce sync.Once
	tldList []string
	tldSet  map[string]struct{}
)

func loadTLDs() {
	tldOnce.Do(func() {
		lines := strings.Split(strings.TrimSpace(tldData), "\n")
		// First line is the version header.
		tldList = lo.FilterMap(lines[1:], func(line string, _ int) (string, bool) {
			line = strings.ToLower(strings.TrimSpace(line))
			return line, line != ""
		})
		tldSet = lo.SliceToMap(tldList, func(tld string) (string, struct{}) {
			return tld, struct{}{}
		})
	})
}

// TLDs returns the reference top-level-domain set, lower-cased, in file
// order. The set is loaded once per process and never mutated afterward;
// callers must not modify the returned slice.
func TLDs() []string {
	loadTLDs()
	return tldList
}

// IsTLD reports whether tld (case-insensitive) is in the reference set.
func IsTLD(tld string) bool {
	loadTLDs()
	_, ok := tldSet[strings.ToLower(tld)]
	return ok
}
