package inet

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestTLDs(t *testing.T) {
	tlds := TLDs()
	require.NotEmpty(t, tlds)
	require.False(t, lo.Contains(tlds, ""), "blank lines are dropped")
	require.True(t, lo.EveryBy(tlds, func(tld string) bool {
		return tld == strings.ToLower(tld)
	}), "entries are lower-cased on load")
	require.False(t, strings.HasPrefix(tlds[0], "#"), "the header line is skipped")

	require.True(t, IsTLD("com"))
	require.True(t, IsTLD("COM"))
	require.False(t, IsTLD("zzzz-not-a-tld"))

	// Memoized load returns the same backing data every time.
	require.Equal(t, len(tlds), len(TLDs()))
}
